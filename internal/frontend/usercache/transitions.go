package usercache

import "github.com/khoahotran/rentredi/internal/domain/user"

// Append returns a new slice with u added at the end.
func Append(users []user.User, u user.User) []user.User {
	out := make([]user.User, 0, len(users)+1)
	out = append(out, users...)
	return append(out, u)
}

// ReplaceByID returns a copy where the record sharing u's id is replaced by u.
// The list is returned unchanged in content when no record matches.
func ReplaceByID(users []user.User, u user.User) []user.User {
	out := make([]user.User, len(users))
	for i, existing := range users {
		if existing.ID == u.ID {
			out[i] = u
			continue
		}
		out[i] = existing
	}
	return out
}

// RemoveByID returns a copy without the record with the given id.
func RemoveByID(users []user.User, id string) []user.User {
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}
