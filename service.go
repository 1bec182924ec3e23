package spacekit

import (
	"sync/atomic"
)

// DefaultSystemAccount is the account id that bypasses all access checks
// unless overridden with WithSystemAccount.
const DefaultSystemAccount = "system"

// Service is the access-control middleware. It owns the AccessIndex,
// maintains it from the transaction stream, and enforces space visibility on
// both pipeline directions before delegating to the next stage.
//
// A Service must be initialized with Initialize before it accepts traffic;
// until then every HandleTx/HandleQuery call fails with ErrNotInitialized.
type Service struct {
	classes       *ClassRegistry
	source        SpaceSource
	next          Pipeline
	resolver      CallerResolver
	index         *AccessIndex
	systemAccount string
	ready         atomic.Bool
}

// Option configures the Service.
type Option func(*Service)

// WithCallerResolver sets a custom caller resolution mechanism. The default
// reads the account set by WithCaller from the request context.
func WithCallerResolver(r CallerResolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithSystemSpaces fixes the set of always-allowed system space ids.
func WithSystemSpaces(ids ...string) Option {
	return func(s *Service) {
		s.index = NewAccessIndex(ids...)
	}
}

// WithSystemAccount overrides the account id that bypasses all checks.
func WithSystemAccount(id string) Option {
	return func(s *Service) {
		s.systemAccount = id
	}
}

// NewService creates the middleware in front of next, backed by the given
// class hierarchy and storage.
//
// Example:
//
//	svc := spacekit.NewService(spacekit.DefaultClasses(), store, executor,
//	    spacekit.WithSystemSpaces("_system"),
//	)
func NewService(classes *ClassRegistry, source SpaceSource, next Pipeline, opts ...Option) *Service {
	s := &Service{
		classes:       classes,
		source:        source,
		next:          next,
		resolver:      ContextResolver{},
		index:         NewAccessIndex(),
		systemAccount: DefaultSystemAccount,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Index returns the access index. Mutation stays with the transaction path;
// callers should treat the returned index as read-only.
func (s *Service) Index() *AccessIndex {
	return s.index
}

// Classes returns the class registry.
func (s *Service) Classes() *ClassRegistry {
	return s.classes
}

// Initialized reports whether the index bootstrap has completed.
func (s *Service) Initialized() bool {
	return s.ready.Load()
}

// isSystem checks if an account is the check-exempt system account.
func (s *Service) isSystem(account string) bool {
	return account == s.systemAccount
}
