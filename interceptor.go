package spacekit

import (
	"context"
	"fmt"
)

// HandleTx authorizes a write transaction and forwards it to the next stage.
// Space-derived transactions additionally maintain the access index before
// forwarding, so membership and visibility changes take effect on the very
// next request.
//
// The authorization decision is made against the index state before the
// transaction's own maintenance effects: a denied transaction leaves the
// index untouched and never reaches the next stage.
func (s *Service) HandleTx(ctx context.Context, tx *Tx) (*TxResult, error) {
	if !s.ready.Load() {
		return nil, ErrNotInitialized
	}
	if tx == nil || !s.classes.IsDerived(tx.ObjectClass, ClassDoc) {
		// Not a document change; none of our business.
		return s.next.HandleTx(ctx, tx)
	}

	caller, err := s.resolver.ResolveCaller(ctx)
	if err != nil {
		// No transaction may be attributed to an unknown actor.
		return nil, err
	}

	spaceTx := s.isSpaceTx(tx)
	effective := tx.SpaceID
	if spaceTx {
		// Space management is authorized against the target space itself.
		effective = tx.ObjectID
	}

	if !s.isSystem(caller) && s.index.Unavailable(caller, effective) {
		return nil, NewError(ErrForbidden, "account has no access to space").
			WithSpace(effective).
			WithAccount(caller).
			WithTx(tx.ObjectID)
	}

	if spaceTx {
		if err := s.maintainSpace(ctx, tx); err != nil {
			return nil, err
		}
	}

	notify, err := s.notifyTargets(ctx, effective)
	if err != nil {
		return nil, err
	}

	res, err := s.next.HandleTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &TxResult{}
	}
	res.Notify = mergeTargets(res.Notify, notify)
	return res, nil
}

// isSpaceTx checks if a transaction maintains space state. Creates and
// updates qualify through their object class; removes qualify through the
// class tag of the creation they undo.
func (s *Service) isSpaceTx(tx *Tx) bool {
	if tx.Kind == TxRemove {
		return tx.Remove != nil && s.classes.IsDerived(tx.Remove.OriginClass, ClassSpace)
	}
	return s.classes.IsDerived(tx.ObjectClass, ClassSpace)
}

// maintainSpace applies a space transaction's effects to the access index.
func (s *Service) maintainSpace(ctx context.Context, tx *Tx) error {
	switch tx.Kind {
	case TxCreate:
		if tx.Create == nil {
			return nil
		}
		if tx.Create.Private {
			s.index.AddSpace(SpaceFromCreate(tx))
		} else {
			s.index.AddPublicSpace(tx.ObjectID)
		}

	case TxUpdate:
		if tx.Update == nil {
			return nil
		}
		return s.maintainSpaceUpdate(ctx, tx.ObjectID, tx.Update)

	case TxRemove:
		s.index.RemoveSpace(tx.ObjectID)
		s.index.RemovePublicSpace(tx.ObjectID)
	}
	return nil
}

// maintainSpaceUpdate applies the three independent update effects in order:
// visibility flip, full member replacement, then push/pull deltas.
func (s *Service) maintainSpaceUpdate(ctx context.Context, spaceID string, op *UpdateOp) error {
	if op.Private != nil {
		if *op.Private {
			// The update need not carry all fields; re-fetch the
			// authoritative record before tracking it as private.
			full, err := s.source.SpaceByID(ctx, spaceID)
			if err != nil {
				return NewError(ErrStorage, fmt.Sprintf("loading space: %v", err)).WithSpace(spaceID)
			}
			if full != nil {
				full.Private = true
				s.index.AddSpace(full)
			}
			s.index.RemovePublicSpace(spaceID)
		} else {
			s.index.RemoveSpace(spaceID)
			s.index.AddPublicSpace(spaceID)
		}
	}

	if op.ReplaceMembers && s.index.IsPrivate(spaceID) {
		// True before/after diff: members only in the new set are
		// linked, members only in the index are unlinked. Replacing
		// with an identical set is a no-op.
		old := s.index.Members(spaceID)
		oldSet := make(map[string]bool, len(old))
		for _, m := range old {
			oldSet[m] = true
		}
		newSet := make(map[string]bool, len(op.Members))
		for _, m := range op.Members {
			newSet[m] = true
		}
		for _, m := range op.Members {
			if !oldSet[m] {
				s.index.AddMemberSpace(m, spaceID)
			}
		}
		for _, m := range old {
			if !newSet[m] {
				s.index.RemoveMemberSpace(m, spaceID)
			}
		}
	}

	// AddMemberSpace/RemoveMemberSpace no-op on spaces not tracked as
	// private, so deltas on public spaces never leak into allowed sets.
	for _, m := range op.Push {
		s.index.AddMemberSpace(m, spaceID)
	}
	for _, m := range op.Pull {
		s.index.RemoveMemberSpace(m, spaceID)
	}
	return nil
}

// notifyTargets resolves the member e-mail addresses of a private space.
// Public, system and untracked spaces have no targets.
func (s *Service) notifyTargets(ctx context.Context, spaceID string) ([]string, error) {
	members := s.index.Members(spaceID)
	if len(members) == 0 {
		return nil, nil
	}
	accounts, err := s.source.AccountsByIDs(ctx, members)
	if err != nil {
		return nil, NewError(ErrStorage, fmt.Sprintf("loading member accounts: %v", err)).WithSpace(spaceID)
	}
	emails := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if a.Email != "" {
			emails = append(emails, a.Email)
		}
	}
	return emails, nil
}

// mergeTargets unions two target lists, keeping first-seen order.
func mergeTargets(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, lst := range [][]string{a, b} {
		for _, t := range lst {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
