package entity

// APIKey grants a fixed set of scopes to whoever signs in with its token.
type APIKey struct {
	BaseSimple
	Token  string   `db:"token"`
	Scopes []string `db:"scopes"`
}
