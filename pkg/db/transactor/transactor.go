// Package transactor propagates database transactions through context, so
// services can group repository calls without knowing the driver.
package transactor

import "context"

// Transactor runs the provided function inside a single transaction,
// committing when it returns nil and rolling back otherwise
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}
