package spacekit

import (
	"context"
)

// SpaceFilter is the space constraint of a query. The zero value means
// unconstrained; otherwise exactly one of ID (single literal) or In
// (inclusion set) is set.
type SpaceFilter struct {
	ID string
	In []string
}

// IsZero checks if the filter leaves the space unconstrained.
func (f SpaceFilter) IsZero() bool {
	return f.ID == "" && f.In == nil
}

// Query is an incoming document query. SpaceKit only interprets the space
// constraint; Where passes through opaquely to the executing stage.
type Query struct {
	Space SpaceFilter
	Where map[string]any
}

// QueryOptions carries execution options for the next stage.
type QueryOptions struct {
	Limit   int
	Offset  int
	Sort    []string
	Lookups []string // joined fields the caller asked for
}

// HandleQuery rewrites a read query to the caller's permitted spaces,
// forwards it to the next stage and strips denied lookup objects from the
// results.
//
// Unlike the write path, identity resolution failure is not an error here:
// an unresolvable caller sees public and system spaces only. A query that
// explicitly names a space outside the permitted set fails with ErrForbidden.
func (s *Service) HandleQuery(ctx context.Context, class string, q Query, opts QueryOptions) ([]Document, error) {
	if !s.ready.Load() {
		return nil, ErrNotInitialized
	}

	caller, err := s.resolver.ResolveCaller(ctx)
	if err != nil {
		caller = ""
	}
	if s.isSystem(caller) {
		return s.next.HandleQuery(ctx, class, q, opts)
	}

	permitted := s.index.PermittedSpaces(caller)
	permittedSet := make(map[string]bool, len(permitted))
	for _, id := range permitted {
		permittedSet[id] = true
	}

	switch {
	case q.Space.ID != "":
		if !permittedSet[q.Space.ID] {
			return nil, NewError(ErrForbidden, "space not in permitted set").
				WithSpace(q.Space.ID).
				WithAccount(caller)
		}
	case q.Space.In != nil:
		kept := make([]string, 0, len(q.Space.In))
		for _, id := range q.Space.In {
			if permittedSet[id] {
				kept = append(kept, id)
			}
		}
		q.Space.In = kept
	default:
		q.Space.In = permitted
	}

	docs, err := s.next.HandleQuery(ctx, class, q, opts)
	if err != nil {
		return nil, err
	}
	s.filterLookups(caller, docs)
	return docs, nil
}
