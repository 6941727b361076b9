// Package errors holds the sentinel errors shared by the catalog store, service and transports.
package errors

import "errors"

// ErrProductNotFound is returned, wrapped, when no catalog entry carries the requested id.
// REST maps it to 404 and every other error to 500.
var ErrProductNotFound = errors.New("product not found")
