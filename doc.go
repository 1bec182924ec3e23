// Package spacekit provides space-level access control middleware for
// document processing pipelines.
//
// SpaceKit sits between a document platform's request layer and its storage
// stage. It keeps a live in-memory index of which accounts may access which
// private spaces, authorizes write transactions against that index, rewrites
// read queries so they only ever consider permitted spaces, and strips joined
// (lookup) objects the caller must not see from query results.
//
// # Core Concepts
//
// Space: A workspace container that scopes documents. A space is either
// public (visible to everyone) or private (visible only to its members).
//
// System space: One of a small fixed set of spaces that is always accessible
// regardless of membership. Used for platform-internal documents. System
// spaces are configured at startup and never created or removed through the
// transaction flow.
//
// Transaction: An atomic description of a document create, field update, or
// removal flowing through the pipeline. Transactions that target space-derived
// classes double as membership/visibility maintenance: SpaceKit applies their
// effects to the access index before forwarding them.
//
// Effective space: The space a write is authorized against. For transactions
// that create or mutate a space it is the target space itself; for everything
// else it is the transaction's declared object space.
//
// # Basic Usage
//
//	// 1. Describe the class hierarchy of your document model
//	classes := spacekit.DefaultClasses()
//	classes.DefineClass("teamspace").DerivedFrom(spacekit.ClassSpace)
//
//	// 2. Back the index with your database
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	store := spacekit.NewSpaceStore(db)
//
//	// 3. Create the middleware in front of your executing stage
//	svc := spacekit.NewService(classes, store, executor,
//	    spacekit.WithSystemSpaces("_system", "_templates"),
//	)
//
//	// 4. Bootstrap the index before serving traffic
//	if err := svc.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 5. Route traffic through the middleware
//	ctx = spacekit.WithCaller(ctx, accountID)
//	res, err := svc.HandleTx(ctx, tx)
//	docs, err := svc.HandleQuery(ctx, "doc", query, opts)
//
// Writes into a private space by a non-member fail with ErrForbidden and are
// never forwarded. Reads never fail on missing identity: an unresolvable
// caller simply sees public and system spaces only.
package spacekit
