package spacekit

// Document is a query result. Lookups holds joined sub-objects attached by a
// downstream stage, keyed by field name.
type Document struct {
	ID      string
	SpaceID string
	Fields  map[string]any
	Lookups map[string]*Lookup
}

// Lookup is a joined field value: either a single optional sub-object or a
// sequence of sub-objects.
type Lookup struct {
	One  *Document
	Many []Document
}

// filterLookups strips joined objects the caller cannot see, using the same
// availability rule as query-time authorization. Sequence lookups are
// filtered in place, single lookups are nulled out. Denied data is silently
// omitted; filtering never fails.
func (s *Service) filterLookups(caller string, docs []Document) {
	for i := range docs {
		for _, l := range docs[i].Lookups {
			if l == nil {
				continue
			}
			if l.One != nil && s.index.Unavailable(caller, l.One.SpaceID) {
				l.One = nil
			}
			if len(l.Many) > 0 {
				kept := l.Many[:0]
				for _, sub := range l.Many {
					if !s.index.Unavailable(caller, sub.SpaceID) {
						kept = append(kept, sub)
					}
				}
				l.Many = kept
			}
		}
	}
}
