package kernel

// PaginationOptions carries the requested page window
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Page describes the window of a paginated result
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated wraps a page of items of any type
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalized clamps the window to valid bounds. Page numbers start at 1.
func (p PaginationOptions) Normalized() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// NewPage computes the page metadata for a total item count
func NewPage(opts PaginationOptions, total int) Page {
	opts = opts.Normalized()
	pages := (total + opts.PageSize - 1) / opts.PageSize
	if pages < 1 {
		pages = 1
	}
	return Page{
		Number: opts.Page,
		Size:   opts.PageSize,
		Total:  total,
		Pages:  pages,
	}
}
