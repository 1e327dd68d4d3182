// Package view holds the presentation rules of the users page: search, ordering,
// cell formatting, form checks and notification texts.
package view

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/khoahotran/rentredi/internal/domain/user"
)

// Matches reports whether u matches the trimmed, case-insensitive query on name or zip code.
// An empty query matches everything.
func Matches(u user.User, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.ZipCode), q)
}

// Visible returns the users matching query sorted by name. The input is not modified.
func Visible(users []user.User, query string) []user.User {
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if Matches(u, query) {
			out = append(out, u)
		}
	}
	SortByName(out)
	return out
}

// SortByName orders users in place by locale-aware name collation. Ties keep their order.
func SortByName(users []user.User) {
	c := collate.New(language.Und)
	slices.SortStableFunc(users, func(a, b user.User) int {
		return c.CompareString(a.Name, b.Name)
	})
}
