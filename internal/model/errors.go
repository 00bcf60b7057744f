// Package model defines the persisted entities and the sentinel errors the
// repositories and services return. Handlers compare against these values
// with errors.Is to pick HTTP status codes; none of them is fatal.
package model

import "errors"

// ErrValidation signals a missing or malformed required field. The caller
// may correct the input and retry.
var ErrValidation = errors.New("validation failed")

// ErrDuplicateUser is returned when registration hits the unique username
// constraint. The first registration's data is left untouched.
var ErrDuplicateUser = errors.New("username already taken")

// ErrNotFound is returned for an unknown username or note id.
var ErrNotFound = errors.New("not found")

// ErrOwnerNotFound is returned when a note is created against a username
// that does not exist.
var ErrOwnerNotFound = errors.New("owner does not exist")

// ErrInvalidCredentials is returned for any authentication failure. Unknown
// username and wrong password deliberately map to the same value so callers
// cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")
