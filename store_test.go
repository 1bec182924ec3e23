package spacekit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniqueID produces ids that do not collide across test runs against a
// shared database.
func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// TestStoreSpaces tests the space queries against a real database
func TestStoreSpaces(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	privID := uniqueID("priv")
	pubID := uniqueID("pub")

	_, err = db.NewInsert().Model(&Space{ID: privID, Name: "Private", Private: true, Members: []string{"alice", "bob"}}).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(&Space{ID: pubID, Name: "Public", Private: false}).Exec(ctx)
	require.NoError(t, err)

	private, err := store.PrivateSpaces(ctx)
	require.NoError(t, err)
	found := false
	for _, sp := range private {
		assert.True(t, sp.Private)
		if sp.ID == privID {
			found = true
			assert.ElementsMatch(t, []string{"alice", "bob"}, sp.Members)
		}
	}
	assert.True(t, found, "private space should be loaded")

	public, err := store.PublicSpaceIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, public, pubID)
	assert.NotContains(t, public, privID)
}

// TestStoreSpaceByID tests single-space lookup including the not-found case
func TestStoreSpaceByID(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	id := uniqueID("space")
	_, err = db.NewInsert().Model(&Space{ID: id, Name: "Lookup", Private: true, Members: []string{"alice"}}).Exec(ctx)
	require.NoError(t, err)

	sp, err := store.SpaceByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, sp)
	assert.Equal(t, "Lookup", sp.Name)
	assert.True(t, sp.Private)

	missing, err := store.SpaceByID(ctx, uniqueID("ghost"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// TestStoreAccountsByIDs tests the account directory lookup
func TestStoreAccountsByIDs(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	aliceID := uniqueID("alice")
	bobID := uniqueID("bob")
	_, err = db.NewInsert().Model(&Account{ID: aliceID, Email: aliceID + "@example.com"}).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(&Account{ID: bobID, Email: bobID + "@example.com"}).Exec(ctx)
	require.NoError(t, err)

	accounts, err := store.AccountsByIDs(ctx, []string{aliceID, bobID, uniqueID("ghost")})
	require.NoError(t, err)
	// Missing ids are silently absent
	assert.Len(t, accounts, 2)

	none, err := store.AccountsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

// TestStoreInitialize tests the full bootstrap path over a real database
func TestStoreInitialize(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	privID := uniqueID("priv")
	_, err = db.NewInsert().Model(&Space{ID: privID, Private: true, Members: []string{"alice"}}).Exec(ctx)
	require.NoError(t, err)

	svc := NewService(DefaultClasses(), store, &RecorderPipeline{})
	require.NoError(t, svc.Initialize(ctx))

	assert.True(t, svc.Index().IsPrivate(privID))
	assert.True(t, svc.Index().Allowed("alice", privID))
}
