package models

const (
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// Page selects a window of an offset-paginated listing. Page numbers start at 1.
type Page struct {
	Number  int `json:"page"`
	PerPage int `json:"per_page"`
}

// Normalize clamps the page into valid bounds.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() uint64 {
	return uint64(p.Normalize().PerPage)
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() uint64 {
	n := p.Normalize()
	return uint64((n.Number - 1) * n.PerPage)
}
