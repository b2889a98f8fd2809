package domain

// ID is used across domain entities.
type ID = int64

// RequestContext carries the authenticated identity for a single request.
// It is derived from the bearer token by the auth middleware and threaded
// explicitly instead of living in a mutable session bag.
type RequestContext struct {
	UserID  ID   `json:"userId"`
	IsAdmin bool `json:"isAdmin"`
}
