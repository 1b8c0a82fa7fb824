package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"movies-api/internal/data/entity"

	"github.com/google/uuid"
)

// NewMemoryRepository keeps everything in process memory. Used for local runs
// without Postgres and in tests.
func NewMemoryRepository() *Repository {
	return &Repository{
		User:      &memoryUserRepository{users: map[uuid.UUID]*entity.User{}},
		APIKey:    &memoryAPIKeyRepository{keys: map[string]*entity.APIKey{}},
		Movie:     NewMemoryMovieRepository(),
		UserMovie: &memoryUserMovieRepository{userMovies: map[uuid.UUID]*entity.UserMovie{}},
	}
}

type memoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[uuid.UUID]*entity.Movie
}

func NewMemoryMovieRepository() MovieRepository {
	return &memoryMovieRepository{movies: map[uuid.UUID]*entity.Movie{}}
}

func (r *memoryMovieRepository) Create(_ context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.movies[movie.ID]; exists {
		return ErrDuplicate
	}
	r.movies[movie.ID] = cloneMovie(movie)
	return nil
}

func (r *memoryMovieRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movie, ok := r.movies[id]
	if !ok || movie.DeletedAt != nil {
		return nil, nil
	}
	return cloneMovie(movie), nil
}

func (r *memoryMovieRepository) FindAll(_ context.Context, tags []string) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := []*entity.Movie{}
	for _, movie := range r.movies {
		if movie.DeletedAt == nil && movie.HasAnyTag(tags) {
			movies = append(movies, cloneMovie(movie))
		}
	}

	sort.SliceStable(movies, func(i, j int) bool {
		return createdBefore(movies[i].Base, movies[j].Base)
	})
	return movies, nil
}

func (r *memoryMovieRepository) Update(_ context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.movies[movie.ID]
	if !ok || current.DeletedAt != nil {
		return ErrNotFound
	}
	r.movies[movie.ID] = cloneMovie(movie)
	return nil
}

func (r *memoryMovieRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.movies[id]
	if !ok || movie.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	movie.DeletedAt = &now
	return nil
}

// createdBefore orders by creation time, then id, so equal timestamps list stably.
func createdBefore(a, b entity.Base) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

func cloneMovie(movie *entity.Movie) *entity.Movie {
	out := *movie
	out.Tags = append([]string(nil), movie.Tags...)
	if movie.DeletedAt != nil {
		deletedAt := *movie.DeletedAt
		out.DeletedAt = &deletedAt
	}
	return &out
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email && user.DeletedAt == nil {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type memoryAPIKeyRepository struct {
	mu   sync.RWMutex
	keys map[string]*entity.APIKey
}

func (r *memoryAPIKeyRepository) Create(_ context.Context, key *entity.APIKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[key.Token]; exists {
		return ErrDuplicate
	}
	copied := *key
	copied.Scopes = append([]string(nil), key.Scopes...)
	r.keys[key.Token] = &copied
	return nil
}

func (r *memoryAPIKeyRepository) FindByToken(_ context.Context, token string) (*entity.APIKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.keys[token]
	if !ok {
		return nil, nil
	}
	copied := *key
	copied.Scopes = append([]string(nil), key.Scopes...)
	return &copied, nil
}

type memoryUserMovieRepository struct {
	mu         sync.RWMutex
	userMovies map[uuid.UUID]*entity.UserMovie
}

func (r *memoryUserMovieRepository) Create(_ context.Context, userMovie *entity.UserMovie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.userMovies {
		if existing.ID == userMovie.ID ||
			(existing.UserID == userMovie.UserID && existing.MovieID == userMovie.MovieID) {
			return ErrDuplicate
		}
	}
	copied := *userMovie
	r.userMovies[userMovie.ID] = &copied
	return nil
}

func (r *memoryUserMovieRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.UserMovie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userMovie, ok := r.userMovies[id]
	if !ok {
		return nil, nil
	}
	copied := *userMovie
	return &copied, nil
}

func (r *memoryUserMovieRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.UserMovie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userMovies := []*entity.UserMovie{}
	for _, userMovie := range r.userMovies {
		if userMovie.UserID == userID {
			copied := *userMovie
			userMovies = append(userMovies, &copied)
		}
	}

	sort.SliceStable(userMovies, func(i, j int) bool {
		a, b := userMovies[i], userMovies[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return userMovies, nil
}

func (r *memoryUserMovieRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.userMovies[id]; !ok {
		return ErrNotFound
	}
	delete(r.userMovies, id)
	return nil
}
