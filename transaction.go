package spacekit

// TxKind identifies the variant of a transaction.
type TxKind string

const (
	TxCreate TxKind = "create"
	TxUpdate TxKind = "update"
	TxRemove TxKind = "remove"
)

// Tx is an atomic description of a document change flowing through the
// pipeline. It is a closed tagged union over {create, update, remove}:
// exactly the payload field matching Kind is set, the other two are nil.
type Tx struct {
	Kind        TxKind
	ObjectClass string // class of the object being changed
	ObjectID    string // id of the object being changed
	SpaceID     string // declared space of the object

	Create *CreateOp // set when Kind == TxCreate
	Update *UpdateOp // set when Kind == TxUpdate
	Remove *RemoveOp // set when Kind == TxRemove
}

// CreateOp carries the attribute set of a created object. Only the
// attributes relevant to space maintenance are modeled; everything else
// passes through opaquely in Doc.
type CreateOp struct {
	Name    string
	Private bool
	Members []string
	Doc     map[string]any // remaining attributes, untouched by SpaceKit
}

// UpdateOp carries the field operations of an update. Membership changes are
// a closed set of delta shapes rather than free-form operators, so an
// unsupported combination cannot be silently ignored:
//
//   - Members with ReplaceMembers set is a full replacement of the member
//     list ($set semantics)
//   - Push appends accounts ($push, single values are one-element batches)
//   - Pull removes the listed accounts ($pull with an inclusion-set filter)
type UpdateOp struct {
	Private        *bool    // nil when the private flag is untouched
	Members        []string // full replacement, meaningful iff ReplaceMembers
	ReplaceMembers bool
	Push           []string
	Pull           []string
}

// RemoveOp carries the removal payload. OriginClass is the class tag of the
// creation being undone; removal is only treated as space maintenance when
// that class derives from the space class.
type RemoveOp struct {
	OriginClass string
}

// NewCreateTx builds a create transaction.
func NewCreateTx(class, objectID, spaceID string, op CreateOp) *Tx {
	return &Tx{
		Kind:        TxCreate,
		ObjectClass: class,
		ObjectID:    objectID,
		SpaceID:     spaceID,
		Create:      &op,
	}
}

// NewUpdateTx builds an update transaction.
func NewUpdateTx(class, objectID, spaceID string, op UpdateOp) *Tx {
	return &Tx{
		Kind:        TxUpdate,
		ObjectClass: class,
		ObjectID:    objectID,
		SpaceID:     spaceID,
		Update:      &op,
	}
}

// NewRemoveTx builds a remove transaction. originClass is the class of the
// creation being undone.
func NewRemoveTx(class, objectID, spaceID, originClass string) *Tx {
	return &Tx{
		Kind:        TxRemove,
		ObjectClass: class,
		ObjectID:    objectID,
		SpaceID:     spaceID,
		Remove:      &RemoveOp{OriginClass: originClass},
	}
}

// SpaceFromCreate materializes the Space value resulting from a create
// transaction. Returns nil for non-create transactions.
func SpaceFromCreate(tx *Tx) *Space {
	if tx == nil || tx.Kind != TxCreate || tx.Create == nil {
		return nil
	}
	sp := &Space{
		ID:      tx.ObjectID,
		Name:    tx.Create.Name,
		Private: tx.Create.Private,
	}
	if tx.Create.Members != nil {
		sp.Members = make([]string, len(tx.Create.Members))
		copy(sp.Members, tx.Create.Members)
	}
	return sp
}

// ApplyTo produces the Space value resulting from applying the update to an
// existing space. The input is not mutated.
func (op *UpdateOp) ApplyTo(s *Space) *Space {
	out := s.Clone()
	if out == nil {
		return nil
	}
	if op.Private != nil {
		out.Private = *op.Private
	}
	if op.ReplaceMembers {
		out.Members = make([]string, len(op.Members))
		copy(out.Members, op.Members)
	}
	for _, account := range op.Push {
		if !out.HasMember(account) {
			out.Members = append(out.Members, account)
		}
	}
	for _, account := range op.Pull {
		kept := out.Members[:0]
		for _, m := range out.Members {
			if m != account {
				kept = append(kept, m)
			}
		}
		out.Members = kept
	}
	return out
}
