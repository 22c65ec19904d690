package squares

import "fmt"

// Validate checks every cross-field invariant of the board. A state that
// fails here is never persisted.
func (s *State) Validate() error {
	if err := s.checkShape(); err != nil {
		return err
	}

	ids := make(map[string]bool, len(s.Players))
	names := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		if p.ID == "" {
			return fmt.Errorf("%w: player %q has no id", ErrMalformedState, p.Name)
		}
		if ids[p.ID] {
			return fmt.Errorf("%w: duplicate player id %q", ErrMalformedState, p.ID)
		}
		if names[p.Name] {
			return fmt.Errorf("%w: duplicate player name %q", ErrMalformedState, p.Name)
		}
		ids[p.ID] = true
		names[p.Name] = true
	}

	counts := make(map[string]int, len(s.Players))
	for _, sq := range s.Board {
		if !sq.Claimed() {
			continue
		}
		if !ids[sq.OwnerID] {
			return fmt.Errorf("%w: square %s owned by unknown player %q", ErrMalformedState, sq.Cell(), sq.OwnerID)
		}
		counts[sq.OwnerID]++
	}
	for _, p := range s.Players {
		if quota := s.QuotaFor(p.ID); counts[p.ID] > quota {
			return fmt.Errorf("%w: %s holds %d squares, quota is %d", ErrMalformedState, p.Name, counts[p.ID], quota)
		}
	}

	extras := make(map[string]bool, len(s.ExtraPlayerIDs))
	for _, id := range s.ExtraPlayerIDs {
		if !ids[id] {
			return fmt.Errorf("%w: extra player %q does not exist", ErrMalformedState, id)
		}
		if extras[id] {
			return fmt.Errorf("%w: extra player %q listed twice", ErrMalformedState, id)
		}
		extras[id] = true
	}

	recorded := make(map[Checkpoint]bool, len(s.Winners))
	for _, w := range s.Winners {
		if recorded[w.Checkpoint] {
			return fmt.Errorf("%w: checkpoint %s recorded twice", ErrMalformedState, w.Checkpoint)
		}
		recorded[w.Checkpoint] = true
	}
	return nil
}
