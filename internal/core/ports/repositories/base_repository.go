package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside a single database transaction.
// fn receives repositories bound to that transaction; returning an error rolls everything back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos RepositoryProvider) error) error
}
