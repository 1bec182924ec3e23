package spacekit

import (
	"context"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
)

// SpaceStore is the Postgres-backed SpaceSource. It is read-only: the space
// and account tables are written by the platform's executing stage, SpaceKit
// only loads them to build and refresh the access index.
type SpaceStore struct {
	db dbkit.IDB
}

var _ SpaceSource = (*SpaceStore)(nil)

// NewSpaceStore creates a store over an existing dbkit connection.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	store := spacekit.NewSpaceStore(db)
func NewSpaceStore(db dbkit.IDB) *SpaceStore {
	return &SpaceStore{db: db}
}

// PrivateSpaces returns all spaces currently flagged private.
func (s *SpaceStore) PrivateSpaces(ctx context.Context) ([]Space, error) {
	var spaces []Space
	err := dbkit.WithErr1(s.db.NewSelect().Model(&spaces).Where("private = ?", true).Scan(ctx), "PrivateSpaces").Err()
	if err != nil {
		return nil, err
	}
	return spaces, nil
}

// PublicSpaceIDs returns the ids of all spaces currently flagged non-private.
func (s *SpaceStore) PublicSpaceIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := dbkit.WithErr1(s.db.NewRaw("SELECT id FROM spaces WHERE private = ?", false).Scan(ctx, &ids), "PublicSpaceIDs").Err()
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SpaceByID returns the full space record, or (nil, nil) when no such space
// exists.
func (s *SpaceStore) SpaceByID(ctx context.Context, id string) (*Space, error) {
	var space Space
	err := dbkit.WithErr1(s.db.NewSelect().Model(&space).Where("id = ?", id).Limit(1).Scan(ctx), "SpaceByID").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &space, nil
}

// AccountsByIDs returns directory entries for the given account ids.
// Ids without an entry are silently absent from the result.
func (s *SpaceStore) AccountsByIDs(ctx context.Context, ids []string) ([]Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var accounts []Account
	err := dbkit.WithErr1(s.db.NewSelect().Model(&accounts).Where("id IN (?)", bun.In(ids)).Scan(ctx), "AccountsByIDs").Err()
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Ping verifies database connectivity. Useful in host readiness checks.
func (s *SpaceStore) Ping(ctx context.Context) error {
	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.PingContext(ctx)
	}
	return nil
}

// Migrations returns the database migrations for the space and account
// tables. Hosts that already own these tables can skip them.
// Use dbkit.Migrate(ctx, store.Migrations()) to run migrations.
func (s *SpaceStore) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "spacekit-001",
			Description: "Create spaces table",
			SQL: `
                CREATE TABLE IF NOT EXISTS spaces (
                    id TEXT PRIMARY KEY,
                    name TEXT,
                    private BOOLEAN NOT NULL DEFAULT false,
                    members TEXT[],
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "spacekit-002",
			Description: "Create accounts table",
			SQL: `
                CREATE TABLE IF NOT EXISTS accounts (
                    id TEXT PRIMARY KEY,
                    email TEXT,
                    name TEXT
                )`,
		},
	}
}
