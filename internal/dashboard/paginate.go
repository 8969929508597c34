package dashboard

import "github.com/rpggio/portfolio/internal/domain/project"

// Page is one bounded slice of the filtered and sorted collection.
type Page struct {
	Items      []project.Project `json:"items"`
	Index      int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Size       int               `json:"pageSize"`
}

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	size = max(size, 1)
	return max(1, (n+size-1)/size)
}

// ClampPage pins page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	return min(max(page, 1), max(totalPages, 1))
}

// Paginate returns the clamped page of records. A non-positive size is
// treated as 1.
func Paginate(records []project.Project, page, size int) Page {
	size = max(size, 1)
	total := TotalPages(len(records), size)
	index := ClampPage(page, total)

	start := min((index-1)*size, len(records))
	end := min(start+size, len(records))
	items := make([]project.Project, end-start)
	copy(items, records[start:end])

	return Page{Items: items, Index: index, TotalPages: total, Size: size}
}
