package spacekit

import (
	"sort"
	"sync"
)

// AccessIndex is the in-memory authorization cache: which accounts may
// access which private spaces, which spaces are public, and which spaces are
// always-allowed system spaces.
//
// The index is owned and mutated by the transaction path of a single Service;
// the query and lookup paths only read it. All access is guarded by a
// read-write mutex so the host may run requests concurrently, but mutations
// for the same space must reach the index in upstream commit order — the
// index applies them in place and cannot reorder.
//
// Invariants held after every mutation:
//
//   - allowed[account] is exactly the set of currently-private spaces the
//     account is a member of; accounts without private memberships have no
//     entry at all
//   - private[id] is defined iff the space exists and is flagged private
//   - public contains exactly the ids of existing non-private spaces
//   - no id is simultaneously in private and public
type AccessIndex struct {
	mu      sync.RWMutex
	allowed map[string]map[string]struct{}
	private map[string]*Space
	public  map[string]struct{}
	system  []string
}

// NewAccessIndex creates an empty index. The system space ids are fixed for
// the lifetime of the index and never touched by transaction flow.
func NewAccessIndex(systemSpaces ...string) *AccessIndex {
	idx := &AccessIndex{
		allowed: make(map[string]map[string]struct{}),
		private: make(map[string]*Space),
		public:  make(map[string]struct{}),
	}
	if len(systemSpaces) > 0 {
		idx.system = make([]string, len(systemSpaces))
		copy(idx.system, systemSpaces)
	}
	return idx
}

// AddSpace inserts or overwrites the private-space record for the space and
// links every member to it. Links of a previously tracked record that are no
// longer members are pruned, keeping the allowed sets exact.
func (idx *AccessIndex) AddSpace(space *Space) {
	if space == nil {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if prev, ok := idx.private[space.ID]; ok {
		for _, account := range prev.Members {
			idx.unlink(account, space.ID)
		}
	}
	idx.private[space.ID] = space.Clone()
	for _, account := range space.Members {
		idx.link(account, space.ID)
	}
}

// RemoveSpace clears the private-space record for id and removes every
// membership link to it. No-op if the id is not tracked.
func (idx *AccessIndex) RemoveSpace(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	space, ok := idx.private[id]
	if !ok {
		return
	}
	for _, account := range space.Members {
		idx.unlink(account, id)
	}
	delete(idx.private, id)
}

// AddMemberSpace links an account to a private space. The tracked record's
// member list is kept in lockstep so RemoveSpace and notification resolution
// see current membership. No-op if the space is not tracked as private.
func (idx *AccessIndex) AddMemberSpace(account, spaceID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	space, ok := idx.private[spaceID]
	if !ok {
		return
	}
	idx.link(account, spaceID)
	if !space.HasMember(account) {
		space.Members = append(space.Members, account)
	}
}

// RemoveMemberSpace unlinks an account from a private space. Deleting from
// an absent account is a no-op. The account's entry is removed entirely when
// its last link goes, so stale keys do not accumulate.
func (idx *AccessIndex) RemoveMemberSpace(account, spaceID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.unlink(account, spaceID)
	if space, ok := idx.private[spaceID]; ok && space.HasMember(account) {
		kept := space.Members[:0]
		for _, m := range space.Members {
			if m != account {
				kept = append(kept, m)
			}
		}
		space.Members = kept
	}
}

// AddPublicSpace inserts an id into the public-space set.
func (idx *AccessIndex) AddPublicSpace(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.public[id] = struct{}{}
}

// RemovePublicSpace deletes an id from the public-space set. No-op if the id
// was never public.
func (idx *AccessIndex) RemovePublicSpace(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.public, id)
}

// link and unlink maintain the allowed map. Callers hold the write lock.
func (idx *AccessIndex) link(account, spaceID string) {
	set, ok := idx.allowed[account]
	if !ok {
		set = make(map[string]struct{})
		idx.allowed[account] = set
	}
	set[spaceID] = struct{}{}
}

func (idx *AccessIndex) unlink(account, spaceID string) {
	set, ok := idx.allowed[account]
	if !ok {
		return
	}
	delete(set, spaceID)
	if len(set) == 0 {
		delete(idx.allowed, account)
	}
}

// PrivateSpace returns a copy of the tracked private-space record for id.
// The second return is false when the space is not tracked as private.
func (idx *AccessIndex) PrivateSpace(id string) (*Space, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	space, ok := idx.private[id]
	if !ok {
		return nil, false
	}
	return space.Clone(), true
}

// IsPrivate checks if a space is currently tracked as private.
func (idx *AccessIndex) IsPrivate(id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.private[id]
	return ok
}

// IsPublic checks if a space is currently tracked as public.
func (idx *AccessIndex) IsPublic(id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.public[id]
	return ok
}

// IsSystemSpace checks if an id belongs to the fixed system-space set.
func (idx *AccessIndex) IsSystemSpace(id string) bool {
	for _, s := range idx.system {
		if s == id {
			return true
		}
	}
	return false
}

// SystemSpaces returns the fixed system-space ids.
func (idx *AccessIndex) SystemSpaces() []string {
	out := make([]string, len(idx.system))
	copy(out, idx.system)
	return out
}

// Members returns the current member list of a tracked private space, or nil
// if the space is not tracked.
func (idx *AccessIndex) Members(spaceID string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	space, ok := idx.private[spaceID]
	if !ok || len(space.Members) == 0 {
		return nil
	}
	out := make([]string, len(space.Members))
	copy(out, space.Members)
	return out
}

// Allowed checks if an account holds a membership link to a private space.
func (idx *AccessIndex) Allowed(account, spaceID string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	set, ok := idx.allowed[account]
	if !ok {
		return false
	}
	_, ok = set[spaceID]
	return ok
}

// AllowedSpaces returns the private spaces an account is a member of, sorted
// for deterministic output. Returns nil for accounts with no memberships.
func (idx *AccessIndex) AllowedSpaces(account string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	set, ok := idx.allowed[account]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Unavailable checks if a space is hidden from an account: tracked as
// private and the account is not a member. Public, system, and untracked
// spaces are never unavailable. This is the single availability rule shared
// by the query and lookup paths.
func (idx *AccessIndex) Unavailable(account, spaceID string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if _, ok := idx.private[spaceID]; !ok {
		return false
	}
	set, ok := idx.allowed[account]
	if !ok {
		return true
	}
	_, ok = set[spaceID]
	return !ok
}

// PermittedSpaces returns every space id an account may read: its private
// memberships, its own id as a pseudo-space, all public spaces and all
// system spaces. With an empty account (anonymous caller) only public and
// system spaces are returned. The result is sorted and duplicate-free.
func (idx *AccessIndex) PermittedSpaces(account string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	set := make(map[string]struct{}, len(idx.public)+len(idx.system)+4)
	for id := range idx.public {
		set[id] = struct{}{}
	}
	for _, id := range idx.system {
		set[id] = struct{}{}
	}
	if account != "" {
		set[account] = struct{}{}
		for id := range idx.allowed[account] {
			set[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
