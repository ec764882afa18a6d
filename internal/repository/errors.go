// Package repository persists users and appointments in MySQL. Sentinel
// errors let handlers distinguish caller mistakes from store failures.
package repository

import "errors"

// ErrNotFound is returned when a record id does not resolve. Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
