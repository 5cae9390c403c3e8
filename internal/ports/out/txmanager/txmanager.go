// Package txmanager is the outbound port for the store's transactional boundary.
package txmanager

import "context"

// Manager runs fn as one atomic unit. Repository calls made with the ctx passed to fn
// join the transaction; if fn returns an error every write is rolled back.
// Calling WithinTx with a ctx that is already inside a transaction joins it.
type Manager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
