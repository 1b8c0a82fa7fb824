package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"movies-api/internal/adaptor"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/internal/dto/response"
	"movies-api/internal/usecase"
	"movies-api/pkg/apperr"
	"movies-api/pkg/middleware"
	"movies-api/pkg/token"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// scopeVerifier treats the bearer token as a comma separated scope list.
type scopeVerifier struct{}

func (scopeVerifier) VerifyToken(_ context.Context, raw string) (*utils.Principal, error) {
	if raw == "invalid" {
		return nil, apperr.Unauthorized("invalid token")
	}
	return &utils.Principal{UserID: uuid.New(), Scopes: strings.Split(raw, ",")}, nil
}

// countingMovieService records every call that reaches the movies service.
type countingMovieService struct {
	next  usecase.MovieService
	calls int
}

func (s *countingMovieService) GetMovies(ctx context.Context, tags []string) ([]response.MovieResponse, error) {
	s.calls++
	return s.next.GetMovies(ctx, tags)
}

func (s *countingMovieService) GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	s.calls++
	return s.next.GetMovie(ctx, movieID)
}

func (s *countingMovieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (string, error) {
	s.calls++
	return s.next.CreateMovie(ctx, req)
}

func (s *countingMovieService) UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (string, error) {
	s.calls++
	return s.next.UpdateMovie(ctx, movieID, req)
}

func (s *countingMovieService) DeleteMovie(ctx context.Context, movieID string) (string, error) {
	s.calls++
	return s.next.DeleteMovie(ctx, movieID)
}

const allScopes = "read:movies,create:movies,update:movies,delete:movies"

type testServer struct {
	t       *testing.T
	router  http.Handler
	movies  *countingMovieService
	service *usecase.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	repo := repository.NewMemoryRepository()

	movies := &countingMovieService{next: usecase.NewMovieService(repo.Movie, logger)}
	service := &usecase.Service{
		Auth:      usecase.NewAuthService(repo, token.NewManager("secret", "test", time.Minute), logger),
		Movie:     movies,
		UserMovie: usecase.NewUserMovieService(repo, logger),
	}
	config := &utils.Config{CORS: utils.CORSConfig{AllowedOrigins: []string{"*"}}}
	errs := middleware.NewErrorPipeline(logger, false)

	router := setupRouter(adaptor.NewHandler(service, logger, false), scopeVerifier{}, errs, nil, config, logger)
	return &testServer{t: t, router: router, movies: movies, service: service}
}

func (s *testServer) do(method, target, scopes string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if scopes != "" {
		req.Header.Set("Authorization", "Bearer "+scopes)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectCode(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

func newMovie(title string, tags ...string) map[string]any {
	return map[string]any{
		"title":         title,
		"year":          2010,
		"cover":         "https://img.test/cover.jpg",
		"description":   "A dream within a dream",
		"duration":      148,
		"contentRating": "PG-13",
		"source":        "https://stream.test/movie",
		"tags":          tags,
	}
}

func (s *testServer) createMovie(title string, tags ...string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/movies", allScopes, newMovie(title, tags...))
	expectCode(s.t, rec, http.StatusCreated)

	env := decode[envelope](s.t, rec)
	if env.Message != "movie created" {
		s.t.Fatalf("unexpected message %q", env.Message)
	}
	var id string
	if err := json.Unmarshal(env.Data, &id); err != nil {
		s.t.Fatalf("decode id: %v", err)
	}
	return id
}

func TestMovieRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/api/movies"},
		{http.MethodGet, "/api/movies/" + uuid.NewString()},
		{http.MethodPost, "/api/movies"},
		{http.MethodPut, "/api/movies/" + uuid.NewString()},
		{http.MethodDelete, "/api/movies/" + uuid.NewString()},
	} {
		rec := s.do(tc.method, tc.target, "", nil)
		expectCode(t, rec, http.StatusUnauthorized)
	}

	expectCode(t, s.do(http.MethodGet, "/api/movies", "invalid", nil), http.StatusUnauthorized)
	if s.movies.calls != 0 {
		t.Fatalf("service called %d times without a token", s.movies.calls)
	}
}

func TestMovieRoutesRequireScopes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/movies", "create:movies", nil)
	expectCode(t, rec, http.StatusForbidden)

	rec = s.do(http.MethodDelete, "/api/movies/"+uuid.NewString(), "read:movies", nil)
	expectCode(t, rec, http.StatusForbidden)
	body := decode[utils.ErrorResponse](t, rec)
	if body.Details["missing"] != "delete:movies" {
		t.Fatalf("unexpected details %v", body.Details)
	}

	rec = s.do(http.MethodPost, "/api/movies", "read:movies", newMovie("Inception"))
	expectCode(t, rec, http.StatusForbidden)

	rec = s.do(http.MethodGet, "/api/movies/"+uuid.NewString(), "delete:movies", nil)
	expectCode(t, rec, http.StatusForbidden)

	rec = s.do(http.MethodPut, "/api/movies/"+uuid.NewString(), "read:movies", map[string]any{"title": "Heat"})
	expectCode(t, rec, http.StatusForbidden)

	if s.movies.calls != 0 {
		t.Fatalf("service called %d times with insufficient scopes", s.movies.calls)
	}
}

func TestMovieCRUD(t *testing.T) {
	s := newTestServer(t)
	id := s.createMovie("Inception", "sci-fi", "heist")

	rec := s.do(http.MethodGet, "/api/movies/"+id, "read:movies", nil)
	expectCode(t, rec, http.StatusOK)
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Fatalf("unexpected Cache-Control %q", cc)
	}
	env := decode[envelope](t, rec)
	if env.Message != "movie retrieved" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	var movie struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	if err := json.Unmarshal(env.Data, &movie); err != nil {
		t.Fatalf("decode movie: %v", err)
	}
	if movie.ID != id || movie.Title != "Inception" || len(movie.Tags) != 2 {
		t.Fatalf("unexpected movie %+v", movie)
	}

	rec = s.do(http.MethodPut, "/api/movies/"+id, "update:movies", map[string]any{"title": "Inception (2010)"})
	expectCode(t, rec, http.StatusOK)
	if env := decode[envelope](t, rec); env.Message != "movie updated" || string(env.Data) != `"`+id+`"` {
		t.Fatalf("unexpected update response %s", rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/api/movies/"+id, "read:movies", nil)
	if !strings.Contains(rec.Body.String(), "Inception (2010)") {
		t.Fatalf("update not visible: %s", rec.Body.String())
	}

	rec = s.do(http.MethodDelete, "/api/movies/"+id, "delete:movies", nil)
	expectCode(t, rec, http.StatusOK)
	if env := decode[envelope](t, rec); env.Message != "movie deleted" {
		t.Fatalf("unexpected message %q", env.Message)
	}

	rec = s.do(http.MethodGet, "/api/movies/"+id, "read:movies", nil)
	expectCode(t, rec, http.StatusNotFound)
	if cc := rec.Header().Get("Cache-Control"); cc != "" {
		t.Fatalf("error responses must not be cached, got %q", cc)
	}

	expectCode(t, s.do(http.MethodDelete, "/api/movies/"+id, "delete:movies", nil), http.StatusNotFound)
}

func TestListMoviesWithTags(t *testing.T) {
	s := newTestServer(t)
	s.createMovie("Inception", "sci-fi")
	s.createMovie("Heat", "crime")
	s.createMovie("Up", "animation")

	rec := s.do(http.MethodGet, "/api/movies", "read:movies", nil)
	expectCode(t, rec, http.StatusOK)
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=300" {
		t.Fatalf("unexpected Cache-Control %q", cc)
	}
	env := decode[envelope](t, rec)
	if env.Message != "movies listed" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	var all []map[string]any
	if err := json.Unmarshal(env.Data, &all); err != nil || len(all) != 3 {
		t.Fatalf("expected 3 movies, got %s (%v)", env.Data, err)
	}

	rec = s.do(http.MethodGet, "/api/movies?tags=crime&tags=animation", "read:movies", nil)
	expectCode(t, rec, http.StatusOK)
	var filtered []map[string]any
	if err := json.Unmarshal(decode[envelope](t, rec).Data, &filtered); err != nil || len(filtered) != 2 {
		t.Fatalf("expected 2 movies, got %s (%v)", rec.Body.String(), err)
	}

	rec = s.do(http.MethodGet, "/api/movies?tags=western", "read:movies", nil)
	expectCode(t, rec, http.StatusOK)
	if data := decode[envelope](t, rec).Data; string(data) != "[]" {
		t.Fatalf("expected empty list, got %s", data)
	}
}

func TestMovieRoutesValidateInput(t *testing.T) {
	s := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := s.do(method, "/api/movies/not-a-uuid", allScopes, map[string]any{"title": "Heat"})
		expectCode(t, rec, http.StatusBadRequest)
		if body := decode[utils.ErrorResponse](t, rec); body.Details["movieId"] == "" {
			t.Fatalf("%s: expected movieId detail, got %v", method, body.Details)
		}
	}

	invalid := newMovie("Inception")
	invalid["year"] = 1700
	delete(invalid, "cover")
	rec := s.do(http.MethodPost, "/api/movies", allScopes, invalid)
	expectCode(t, rec, http.StatusBadRequest)
	body := decode[utils.ErrorResponse](t, rec)
	if body.Details["year"] == "" || body.Details["cover"] == "" {
		t.Fatalf("expected year and cover details, got %v", body.Details)
	}

	for _, update := range []map[string]any{
		{"duration": 0},
		{"title": ""},
		{"description": ""},
		{"contentRating": ""},
	} {
		rec = s.do(http.MethodPut, "/api/movies/"+uuid.NewString(), allScopes, update)
		expectCode(t, rec, http.StatusBadRequest)
	}

	if s.movies.calls != 0 {
		t.Fatalf("service called %d times for invalid input", s.movies.calls)
	}

	expectCode(t, s.do(http.MethodGet, "/api/movies/"+uuid.NewString(), allScopes, nil), http.StatusNotFound)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/nothing-here", "", nil)
	expectCode(t, rec, http.StatusNotFound)
	body := decode[utils.ErrorResponse](t, rec)
	if body.StatusCode != http.StatusNotFound || body.Message != "route not found" {
		t.Fatalf("unexpected body %+v", body)
	}

	expectCode(t, s.do(http.MethodGet, "/health", "", nil), http.StatusOK)
}

func TestSignInFlow(t *testing.T) {
	config := &utils.Config{
		JWT:  utils.JWTConfig{Secret: "secret", Issuer: "movies-api-test", Expiry: time.Minute},
		CORS: utils.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	app := Wiring(repository.NewMemoryRepository(), config, zap.NewNop())

	apiKey, err := app.Service.Auth.CreateAPIKey(context.Background(), usecase.PublicScopes)
	if err != nil {
		t.Fatalf("create api key: %v", err)
	}

	signUp := httptest.NewRequest(http.MethodPost, "/api/auth/sign-up",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, signUp)
	expectCode(t, rec, http.StatusCreated)

	signIn := func(password string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-in",
			strings.NewReader(`{"apiKeyToken":"`+apiKey+`"}`))
		if password != "" {
			req.SetBasicAuth("ada@example.com", password)
		}
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		return rec
	}

	rec = signIn("")
	expectCode(t, rec, http.StatusUnauthorized)
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("expected WWW-Authenticate challenge")
	}
	expectCode(t, signIn("wrong password"), http.StatusUnauthorized)

	rec = signIn("correct horse")
	expectCode(t, rec, http.StatusOK)
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(decode[envelope](t, rec).Data, &auth); err != nil || auth.Token == "" {
		t.Fatalf("expected token, got %s", rec.Body.String())
	}

	call := func(method string, body io.Reader) int {
		req := httptest.NewRequest(method, "/api/movies", body)
		req.Header.Set("Authorization", "Bearer "+auth.Token)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := call(http.MethodGet, nil); code != http.StatusOK {
		t.Fatalf("public key should read movies, got %d", code)
	}
	if code := call(http.MethodPost, strings.NewReader(`{}`)); code != http.StatusForbidden {
		t.Fatalf("public key must not create movies, got %d", code)
	}
}

const userMovieScopes = "read:user-movies,create:user-movies,delete:user-movies"

func TestUserMovieRoutes(t *testing.T) {
	s := newTestServer(t)
	movieID := s.createMovie("Inception", "sci-fi")

	userID, err := s.service.Auth.SignUp(context.Background(), &request.SignUpRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	expectCode(t, s.do(http.MethodGet, "/api/user-movies?userId="+userID, "", nil), http.StatusUnauthorized)
	expectCode(t, s.do(http.MethodGet, "/api/user-movies?userId="+userID, "read:movies", nil), http.StatusForbidden)

	link := map[string]any{"userId": userID, "movieId": movieID}
	rec := s.do(http.MethodPost, "/api/user-movies", userMovieScopes, link)
	expectCode(t, rec, http.StatusCreated)
	env := decode[envelope](t, rec)
	if env.Message != "user movie created" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	var userMovieID string
	if err := json.Unmarshal(env.Data, &userMovieID); err != nil {
		t.Fatalf("decode id: %v", err)
	}

	expectCode(t, s.do(http.MethodPost, "/api/user-movies", userMovieScopes, link), http.StatusBadRequest)

	rec = s.do(http.MethodGet, "/api/user-movies?userId="+userID, userMovieScopes, nil)
	expectCode(t, rec, http.StatusOK)
	env = decode[envelope](t, rec)
	if env.Message != "user movies listed" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	var listed []struct {
		ID      string `json:"id"`
		MovieID string `json:"movieId"`
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != userMovieID || listed[0].MovieID != movieID {
		t.Fatalf("unexpected user movies %+v", listed)
	}

	rec = s.do(http.MethodDelete, "/api/user-movies/"+userMovieID, userMovieScopes, nil)
	expectCode(t, rec, http.StatusOK)
	if env := decode[envelope](t, rec); env.Message != "user movie deleted" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	expectCode(t, s.do(http.MethodDelete, "/api/user-movies/"+userMovieID, userMovieScopes, nil), http.StatusNotFound)

	rec = s.do(http.MethodGet, "/api/user-movies?userId="+userID, userMovieScopes, nil)
	if data := decode[envelope](t, rec).Data; string(data) != "[]" {
		t.Fatalf("expected empty list after delete, got %s", data)
	}
}

func TestUserMovieRoutesValidateInput(t *testing.T) {
	s := newTestServer(t)

	expectCode(t, s.do(http.MethodGet, "/api/user-movies", userMovieScopes, nil), http.StatusBadRequest)
	expectCode(t, s.do(http.MethodGet, "/api/user-movies?userId=nope", userMovieScopes, nil), http.StatusBadRequest)
	expectCode(t, s.do(http.MethodDelete, "/api/user-movies/nope", userMovieScopes, nil), http.StatusBadRequest)
	expectCode(t, s.do(http.MethodPost, "/api/user-movies", userMovieScopes,
		map[string]any{"userId": uuid.NewString()}), http.StatusBadRequest)

	// Well-formed ids that point nowhere
	expectCode(t, s.do(http.MethodPost, "/api/user-movies", userMovieScopes,
		map[string]any{"userId": uuid.NewString(), "movieId": uuid.NewString()}), http.StatusNotFound)
}
