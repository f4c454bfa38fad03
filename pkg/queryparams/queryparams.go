package queryparams

// List query defaults. PerPage is clamped so a caller cannot drag the
// whole table through one request.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultSortBy  = "created_at"
	DefaultOrderBy = "desc"
)

// ListParams carries the common list-endpoint query parameters.
// Name is a fuzzy match on the entity's display column, Status an
// equality filter on its active flag ("true"/"false", empty = all).
type ListParams struct {
	Name    string `query:"name"`
	Status  string `query:"status"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
}

// DefaultListParams returns ListParams with defaults and the given sort column.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
	}
}

// Validate clamps page and per_page into their allowed ranges and fills
// empty sort fields with defaults.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

// CalculateOffset returns the SQL offset for the current page.
func (p *ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// CalculateTotalPages returns ceiling(totalItems / perPage).
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return int((totalItems + int64(perPage) - 1) / int64(perPage))
}

// PaginationMeta describes one page of a paginated result set.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult is the data+meta pair list endpoints return inside the
// response envelope.
type PaginatedResult struct {
	Data any            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
