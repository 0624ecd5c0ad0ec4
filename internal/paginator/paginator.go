// Package paginator splits a counted listing into fixed-size pages.
//
// Requests for pages outside the valid range never fail: they resolve to the
// last page, and an empty listing still has one (empty) first page.
package paginator

import (
	"strconv"
	"strings"
)

type Page struct {
	Number   int
	NumPages int
	Count    int64
	Size     int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func NumPages(count int64, size int) int {
	if count <= 0 || size <= 0 {
		return 1
	}
	return int((count + int64(size) - 1) / int64(size))
}

// Get resolves the requested page number against count items.
func Get(count int64, size int, number int) Page {
	if size <= 0 {
		size = 1
	}
	numPages := NumPages(count, size)
	if number < 1 || number > numPages {
		number = numPages
	}
	return Page{
		Number:   number,
		NumPages: numPages,
		Count:    count,
		Size:     size,
	}
}

// ParseNumber reads a raw page query value. Anything that is not an integer
// means the first page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}
