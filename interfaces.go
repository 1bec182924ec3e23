package spacekit

import (
	"context"
)

// SpaceSource provides the storage queries the middleware needs: bulk loads
// for index bootstrap, authoritative single-space reads for visibility flips,
// and the account directory for notification targets. SpaceStore implements
// it over Postgres; tests use an in-memory implementation.
type SpaceSource interface {
	// PrivateSpaces returns all spaces currently flagged private.
	PrivateSpaces(ctx context.Context) ([]Space, error)

	// PublicSpaceIDs returns the ids of all spaces currently flagged
	// non-private.
	PublicSpaceIDs(ctx context.Context) ([]string, error)

	// SpaceByID returns the full space record, or (nil, nil) when the
	// space does not exist.
	SpaceByID(ctx context.Context, id string) (*Space, error)

	// AccountsByIDs returns directory entries for the given account ids.
	// Missing ids are silently absent from the result.
	AccountsByIDs(ctx context.Context, ids []string) ([]Account, error)
}

// CallerResolver resolves the account a request acts on behalf of.
// Resolution failure is fatal on the write path and downgrades the read path
// to public-only visibility.
type CallerResolver interface {
	ResolveCaller(ctx context.Context) (string, error)
}

// CallerResolverFunc adapts a plain function to a CallerResolver.
type CallerResolverFunc func(ctx context.Context) (string, error)

// ResolveCaller implements CallerResolver.
func (f CallerResolverFunc) ResolveCaller(ctx context.Context) (string, error) {
	return f(ctx)
}

// Pipeline is the contract between processing stages. The Service both
// implements it (for the stage before it) and delegates to the next stage
// through it.
type Pipeline interface {
	// HandleTx applies a write transaction and returns its result.
	HandleTx(ctx context.Context, tx *Tx) (*TxResult, error)

	// HandleQuery executes a read query for a class and returns the
	// matching documents.
	HandleQuery(ctx context.Context, class string, q Query, opts QueryOptions) ([]Document, error)
}

// TxResult is the outcome of a write transaction after it has passed through
// the remaining pipeline stages.
type TxResult struct {
	// Object is the resulting value produced by the executing stage.
	Object any

	// Derived holds follow-on transactions computed downstream.
	Derived []*Tx

	// Notify lists e-mail addresses of accounts to notify about the
	// change. SpaceKit merges the affected private space's member e-mails
	// into whatever the downstream stages already collected.
	Notify []string
}
