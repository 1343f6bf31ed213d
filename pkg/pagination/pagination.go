package pagination

// DefaultLimit is the standard page size when a limit is not provided.
const DefaultLimit = 20

// MaxLimit caps how many rows any listing query can request.
const MaxLimit = 100

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize enforces the configured default and maximum limits.
func (p Params) Normalize() Params {
	out := p
	if out.Page <= 0 {
		out.Page = 1
	}
	if out.Limit <= 0 {
		out.Limit = DefaultLimit
	}
	if out.Limit > MaxLimit {
		out.Limit = MaxLimit
	}
	return out
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Page describes one page of results plus enough metadata to fetch the next.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// BuildPage computes page metadata from the normalized params and total row count.
func BuildPage(params Params, total int64) Page {
	n := params.Normalize()
	pages := int(total) / n.Limit
	if int(total)%n.Limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return Page{
		Page:       n.Page,
		Limit:      n.Limit,
		TotalItems: total,
		TotalPages: pages,
	}
}
