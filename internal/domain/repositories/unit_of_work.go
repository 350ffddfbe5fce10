package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations. Every mutation
// runs its state write and its event appends inside one Do call so the
// audit log cannot drift from current state.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
