package models

const (
	// DefaultItemsPerPage is the initial page size.
	DefaultItemsPerPage = 25
)

// ItemsPerPageOptions are the page sizes offered by the pagination control.
var ItemsPerPageOptions = []int{25, 50, 100}

// Pagination holds the zero-based item offset and the page size.
type Pagination struct {
	Current      int
	ItemsPerPage int
}

// NewPagination returns the default pagination state.
func NewPagination() Pagination {
	return Pagination{Current: 0, ItemsPerPage: DefaultItemsPerPage}
}

// ShowingRange returns the 1-based first item, the last item and the total
// used by the "Showing results" summary.
func (p Pagination) ShowingRange(total int) (from, to, of int) {
	from = p.Current + 1
	to = min(p.Current+p.ItemsPerPage, total)
	if total <= 0 {
		from, to = 0, 0
	}
	return from, to, max(total, 0)
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Current > 0
}

// HasNext reports whether another page exists after the current one.
func (p Pagination) HasNext(total int) bool {
	return p.Current+p.ItemsPerPage < total
}

// Prev returns the offset of the previous page.
func (p Pagination) Prev() int {
	return max(p.Current-p.ItemsPerPage, 0)
}

// Next returns the offset of the next page.
func (p Pagination) Next() int {
	return p.Current + p.ItemsPerPage
}

// Page returns the 1-based page number and the page count for total items.
func (p Pagination) Page(total int) (page, pages int) {
	if p.ItemsPerPage <= 0 {
		return 1, 1
	}
	page = p.Current/p.ItemsPerPage + 1
	pages = (total + p.ItemsPerPage - 1) / p.ItemsPerPage
	return page, max(pages, 1)
}

// NextItemsPerPage cycles through ItemsPerPageOptions by step (+1 or -1).
func NextItemsPerPage(current, step int) int {
	idx := 0
	for i, n := range ItemsPerPageOptions {
		if n == current {
			idx = i
			break
		}
	}
	n := len(ItemsPerPageOptions)
	return ItemsPerPageOptions[((idx+step)%n+n)%n]
}
