package domain

import "strconv"

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Items    []T
	Number   int
	PerPage  int
	NumPages int
	Total    int64
}

// NewPage assembles a page. Number is expected to come from ResolvePage.
func NewPage[T any](items []T, number, perPage int, total int64) *Page[T] {
	return &Page[T]{
		Items:    items,
		Number:   number,
		PerPage:  perPage,
		NumPages: NumPages(total, perPage),
		Total:    total,
	}
}

func (p *Page[T]) HasPrevious() bool   { return p.Number > 1 }
func (p *Page[T]) HasNext() bool       { return p.Number < p.NumPages }
func (p *Page[T]) PreviousNumber() int { return p.Number - 1 }
func (p *Page[T]) NextNumber() int     { return p.Number + 1 }

// Offset is the number of items preceding this page.
func (p *Page[T]) Offset() int64 { return int64(p.Number-1) * int64(p.PerPage) }

// NumPages returns the page count for total items. An empty listing still has
// one (empty) page.
func NumPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// ResolvePage turns a raw page query value into a valid page number:
// a missing or non-numeric value selects the first page, an out-of-range
// number selects the last page.
func ResolvePage(raw string, total int64, perPage int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	last := NumPages(total, perPage)
	if n < 1 || n > last {
		return last
	}
	return n
}
