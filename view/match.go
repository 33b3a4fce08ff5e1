package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/htol/bookshop/book"
)

// matcher does case-insensitive substring matching with Unicode case
// folding. A cases.Caser holds state, so each matcher owns one.
type matcher struct {
	fold  cases.Caser
	query string
}

func newMatcher(query string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.query = m.fold.String(strings.TrimSpace(query))
	return m
}

// any reports whether the query occurs in any of fields. An empty query
// matches.
func (m *matcher) any(fields ...string) bool {
	if m.query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.query) {
			return true
		}
	}
	return false
}

func (m *matcher) equal(a, b string) bool {
	return m.fold.String(a) == m.fold.String(b)
}

// MatchBook reports whether query occurs in b's title or author.
func MatchBook(b book.Book, query string) bool {
	return newMatcher(query).any(b.Title, b.Author)
}
