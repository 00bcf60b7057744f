// Package auth holds the authorization guard. The rule is uniform across
// the application: an operation touching a user's profile or a note is
// permitted only when the acting identity equals the owning username.
package auth

import "errors"

// ErrUnauthorized is returned whenever the actor does not own the resource.
// Handlers translate it into HTTP 403 without revealing anything else about
// the resource.
var ErrUnauthorized = errors.New("unauthorized")

// Authorize checks that actor owns the resource identified by owner. It is
// a pure function of the two identities, so it must run before any mutation
// and before any data is rendered back. An empty actor is always rejected.
func Authorize(actor, owner string) error {
	if actor == "" || actor != owner {
		return ErrUnauthorized
	}
	return nil
}
