package entity

type Movie struct {
	Base
	Title         string   `db:"title"`
	Year          int      `db:"year"`
	Cover         string   `db:"cover"`
	Description   string   `db:"description"`
	Duration      int      `db:"duration"`
	ContentRating string   `db:"content_rating"`
	Source        string   `db:"source"`
	Tags          []string `db:"tags"`
}

// HasAnyTag reports whether the movie carries at least one of tags.
// An empty filter matches every movie.
func (m *Movie) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range m.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}
