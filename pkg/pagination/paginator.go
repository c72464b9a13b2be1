// Package pagination resolves page numbers against a fixed page size.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPerPage is the page size of every feed listing.
const DefaultPerPage = 10

// Paginator splits count items into pages of PerPage.
type Paginator struct {
	Count   int64
	PerPage int
}

// New creates a Paginator. A non-positive perPage falls back to DefaultPerPage.
func New(count int64, perPage int) Paginator {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if count < 0 {
		count = 0
	}
	return Paginator{Count: count, PerPage: perPage}
}

// NumPages is never below 1; an empty listing still has one empty page.
func (p Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// PageNumber resolves a raw page value. Missing, non-numeric or values below 1
// give the first page, values past the end give the last page.
func (p Paginator) PageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if last := p.NumPages(); n > last {
		return last
	}
	return n
}

// Offset is the index of the first item on page number.
func (p Paginator) Offset(number int) int {
	return (number - 1) * p.PerPage
}

// Page is one resolved page of items.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Number   int   `json:"current_page"`
	NumPages int   `json:"total_pages"`
	Count    int64 `json:"total_items"`
	PerPage  int   `json:"items_per_page"`
}

// NewPage wraps items fetched for number.
func NewPage[T any](p Paginator, number int, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:    items,
		Number:   number,
		NumPages: p.NumPages(),
		Count:    p.Count,
		PerPage:  p.PerPage,
	}
}

func (pg *Page[T]) HasNext() bool {
	return pg.Number < pg.NumPages
}

func (pg *Page[T]) HasPrevious() bool {
	return pg.Number > 1
}
