// Package repository holds the MySQL-backed stores for users and the three
// booking tables.  Failures are wrapped with cockroachdb/errors; callers
// compare against the sentinels below with errors.Is.
package repository

import "github.com/cockroachdb/errors"

// ErrUserNotFound is returned when no user matches the lookup key.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when signup races another signup for the same
// email and the UNIQUE index rejects the insert.
var ErrEmailExists = errors.New("email already exists")

// ErrBookingNotFound is returned when a booking id does not exist.
var ErrBookingNotFound = errors.New("booking not found")
