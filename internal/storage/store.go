// Package storage holds the key-value "local storage" every record and session
// marker lives in, plus its sqlite implementation.
package storage

import (
	"context"
	"strings"
)

// Keys of the persisted state layout.
const (
	UserKeyPrefix  = "user-"
	SessionUserKey = "userName"
	LoggedInKey    = "isLoggedIn"
)

// Store is a string key-value store. Writes replace the whole value.
//
// Keys returns every key in the implementation's enumeration order; callers
// must not assume it is chronological.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// UserKey returns the key holding the record of name.
func UserKey(name string) string {
	return UserKeyPrefix + name
}

// UserFromKey reports the user name stored under key, if key is a user key.
func UserFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, UserKeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, UserKeyPrefix), true
}
