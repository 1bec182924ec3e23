package spacekit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLookupFilterSequence tests in-place filtering of joined sequences
func TestLookupFilterSequence(t *testing.T) {
	svc, _, next := newTestService()
	mustInit(t, svc)
	svc.Index().AddSpace(&Space{ID: "priv", Private: true, Members: []string{"alice"}})
	svc.Index().AddSpace(&Space{ID: "other", Private: true, Members: []string{"bob"}})
	svc.Index().AddPublicSpace("pub")

	next.QueryResult = []Document{
		{
			ID: "d1", SpaceID: "pub",
			Lookups: map[string]*Lookup{
				"comments": {Many: []Document{
					{ID: "c1", SpaceID: "pub"},
					{ID: "c2", SpaceID: "other"},
					{ID: "c3", SpaceID: "priv"},
					{ID: "c4", SpaceID: "_system"},
				}},
			},
		},
	}

	docs, err := svc.HandleQuery(WithCaller(context.Background(), "alice"), ClassDoc, Query{}, QueryOptions{})
	require.NoError(t, err)

	comments := docs[0].Lookups["comments"].Many
	require.Len(t, comments, 3)
	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, "c3", comments[1].ID)
	assert.Equal(t, "c4", comments[2].ID)
}

// TestLookupFilterSingle tests nulling of single joined objects
func TestLookupFilterSingle(t *testing.T) {
	svc, _, next := newTestService()
	mustInit(t, svc)
	svc.Index().AddSpace(&Space{ID: "other", Private: true, Members: []string{"bob"}})
	svc.Index().AddPublicSpace("pub")

	next.QueryResult = []Document{
		{
			ID: "d1", SpaceID: "pub",
			Lookups: map[string]*Lookup{
				"author":  {One: &Document{ID: "u1", SpaceID: "other"}},
				"project": {One: &Document{ID: "p1", SpaceID: "pub"}},
				"empty":   nil,
			},
		},
	}

	docs, err := svc.HandleQuery(WithCaller(context.Background(), "alice"), ClassDoc, Query{}, QueryOptions{})
	require.NoError(t, err)

	// Denied single lookups are nulled, permitted ones survive, and
	// filtering never errors
	assert.Nil(t, docs[0].Lookups["author"].One)
	assert.NotNil(t, docs[0].Lookups["project"].One)
}

// TestLookupFilterMirrorsQueryRule tests that availability matches the
// query-path rule exactly, including the caller pseudo-space
func TestLookupFilterMirrorsQueryRule(t *testing.T) {
	svc, _, next := newTestService()
	mustInit(t, svc)
	svc.Index().AddSpace(&Space{ID: "priv", Private: true, Members: []string{"alice"}})

	next.QueryResult = []Document{
		{
			ID: "d1", SpaceID: "alice",
			Lookups: map[string]*Lookup{
				"related": {Many: []Document{
					{ID: "r1", SpaceID: "alice"},
					{ID: "r2", SpaceID: "priv"},
					{ID: "r3", SpaceID: "untracked"},
				}},
			},
		},
	}

	docs, err := svc.HandleQuery(WithCaller(context.Background(), "alice"), ClassDoc, Query{}, QueryOptions{})
	require.NoError(t, err)

	// Pseudo-space and untracked spaces are available; everything the
	// caller could query stays
	assert.Len(t, docs[0].Lookups["related"].Many, 3)
}

// TestLookupFilterSystemAccount tests that system queries skip filtering
func TestLookupFilterSystemAccount(t *testing.T) {
	svc, _, next := newTestService()
	mustInit(t, svc)
	svc.Index().AddSpace(&Space{ID: "priv", Private: true, Members: []string{"alice"}})

	next.QueryResult = []Document{
		{
			ID: "d1", SpaceID: "priv",
			Lookups: map[string]*Lookup{
				"author": {One: &Document{ID: "u1", SpaceID: "priv"}},
			},
		},
	}

	docs, err := svc.HandleQuery(WithCaller(context.Background(), DefaultSystemAccount), ClassDoc, Query{}, QueryOptions{})
	require.NoError(t, err)

	assert.NotNil(t, docs[0].Lookups["author"].One)
}

// TestLookupFilterAnonymous tests filtering under the anonymous fallback
func TestLookupFilterAnonymous(t *testing.T) {
	svc, _, next := newTestService()
	mustInit(t, svc)
	svc.Index().AddSpace(&Space{ID: "priv", Private: true, Members: []string{"alice"}})
	svc.Index().AddPublicSpace("pub")

	next.QueryResult = []Document{
		{
			ID: "d1", SpaceID: "pub",
			Lookups: map[string]*Lookup{
				"refs": {Many: []Document{
					{ID: "r1", SpaceID: "pub"},
					{ID: "r2", SpaceID: "priv"},
				}},
			},
		},
	}

	docs, err := svc.HandleQuery(context.Background(), ClassDoc, Query{}, QueryOptions{})
	require.NoError(t, err)

	refs := docs[0].Lookups["refs"].Many
	require.Len(t, refs, 1)
	assert.Equal(t, "r1", refs[0].ID)
}
