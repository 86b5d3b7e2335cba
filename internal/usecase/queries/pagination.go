package queries

import "strings"

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Page is offset pagination with a whitelisted sort column. Unknown sort
// input falls back to the first allowed column rather than erroring, so a
// stale client keeps working after a column rename.
type Page struct {
	Page          int
	Limit         int
	SortBy        string
	SortDirection string
}

func (p Page) Normalized(sortable ...string) Page {
	out := p
	if out.Page < 1 {
		out.Page = defaultPage
	}
	if out.Limit < 1 {
		out.Limit = defaultLimit
	}
	if out.Limit > maxLimit {
		out.Limit = maxLimit
	}

	out.SortBy = strings.ToLower(strings.TrimSpace(out.SortBy))
	allowed := false
	for _, col := range sortable {
		if out.SortBy == col {
			allowed = true
			break
		}
	}
	if !allowed && len(sortable) > 0 {
		out.SortBy = sortable[0]
	}

	if strings.EqualFold(out.SortDirection, SortAsc) {
		out.SortDirection = SortAsc
	} else {
		out.SortDirection = SortDesc
	}
	return out
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}
