package spacekit

import (
	"time"

	"github.com/uptrace/bun"
)

// Space represents a workspace container that scopes documents.
// The same type backs both the Postgres store and the in-memory access index.
type Space struct {
	bun.BaseModel `bun:"table:spaces,alias:sp"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name"`
	Private   bool      `bun:"private,notnull,default:false"`
	Members   []string  `bun:"members,type:text[]"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// HasMember checks if an account is a current member of the space.
func (s *Space) HasMember(account string) bool {
	for _, m := range s.Members {
		if m == account {
			return true
		}
	}
	return false
}

// MemberSet returns the members as a set. Duplicates in the member list
// collapse; order is irrelevant for access decisions.
func (s *Space) MemberSet() map[string]bool {
	set := make(map[string]bool, len(s.Members))
	for _, m := range s.Members {
		set[m] = true
	}
	return set
}

// Clone returns a deep copy of the space. The access index stores clones so
// callers cannot alias its internal state.
func (s *Space) Clone() *Space {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Members != nil {
		cp.Members = make([]string, len(s.Members))
		copy(cp.Members, s.Members)
	}
	return &cp
}

// Account represents an entry in the platform's account directory.
// SpaceKit only reads accounts, to resolve member notification targets.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:ac"`

	ID    string `bun:"id,pk"`
	Email string `bun:"email"`
	Name  string `bun:"name"`
}
