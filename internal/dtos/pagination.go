package dtos

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NormalizePage clamps page/limit to sane values, defaulting to 1/10.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// NewPageMeta computes pages = ceil(total / limit).
func NewPageMeta(page, limit int, total int64) PageMeta {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{Page: page, Limit: limit, Total: total, Pages: pages}
}
