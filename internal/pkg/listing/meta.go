// Package listing turns client query parameters into filtered, searched, sorted and
// paginated gorm queries, restricted to an explicit allow-list of fields.
package listing

// Meta describes one page of a listing.
type Meta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

// NewMeta computes TotalPage as ceil(total/limit).
func NewMeta(page, limit int, total int64) Meta {
	totalPage := 0
	if limit > 0 {
		totalPage = int((total + int64(limit) - 1) / int64(limit))
	}
	return Meta{Page: page, Limit: limit, Total: total, TotalPage: totalPage}
}
