package domain

const (
	// DefaultPageLimit is used when the caller does not send a limit.
	DefaultPageLimit = 50
	// MaxPageLimit caps every page request.
	MaxPageLimit = 100
)

// PageParams carries limit/offset values from the HTTP layer to the service layer.
// Use NewPageParams to build one from optional query params.
type PageParams struct {
	Limit  int
	Offset int
}

// NewPageParams builds PageParams from optional HTTP query params.
// Nil or non-positive limits fall back to DefaultPageLimit, larger ones are
// capped at MaxPageLimit. Negative offsets become 0.
func NewPageParams(limit, offset *int) PageParams {
	p := PageParams{Limit: DefaultPageLimit}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	if offset != nil && *offset > 0 {
		p.Offset = *offset
	}
	return p
}
