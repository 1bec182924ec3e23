package spacekit

import (
	"context"
	"fmt"
)

// Initialize performs the one-time index bootstrap: every private space is
// loaded into the index with its membership, and every public space id is
// recorded. The service refuses transactions and queries until this has
// completed, and a storage failure leaves it refusing — the host must treat
// that as fatal to startup.
func (s *Service) Initialize(ctx context.Context) error {
	private, err := s.source.PrivateSpaces(ctx)
	if err != nil {
		return NewError(ErrStorage, fmt.Sprintf("loading private spaces: %v", err))
	}
	public, err := s.source.PublicSpaceIDs(ctx)
	if err != nil {
		return NewError(ErrStorage, fmt.Sprintf("loading public spaces: %v", err))
	}

	for i := range private {
		s.index.AddSpace(&private[i])
	}
	for _, id := range public {
		s.index.AddPublicSpace(id)
	}

	s.ready.Store(true)
	return nil
}
