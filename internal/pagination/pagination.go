package pagination

// Params adalah page/limit hasil parse query string. Zero value berarti default.
type Params struct {
	Page  int
	Limit int
}

// Normalize menerapkan default page=1, limit=10.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

type Result struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func NewResult(total int, p Params) Result {
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return Result{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}
