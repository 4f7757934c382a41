// Package auth holds the credential store the login server authenticates
// against.
package auth

import "context"

// Store is the credential backend consumed by sessions. Implementations must
// be safe for concurrent use: at most one of two overlapping Register calls
// for the same name may report success.
type Store interface {
	// Exists reports whether a player with this name is registered.
	Exists(ctx context.Context, name string) (bool, error)
	// Register creates the player with the given password. It returns false
	// when the name is already taken.
	Register(ctx context.Context, name, password string) (bool, error)
	// Authenticate verifies the password. It returns false both for an
	// unknown name and for a wrong password.
	Authenticate(ctx context.Context, name, password string) (bool, error)
}
