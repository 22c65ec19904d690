// Package squares implements the allocation and scoring rules of a 10x10
// squares pool.
//
// The main type is State, the single blob that describes a board: its players,
// the ownership of all 100 squares, the lock flag, the digit labels assigned
// to rows and columns, and the winner ledger. Every rule is a method on *State
// that either applies one change or returns a sentinel error and leaves the
// state exactly as it was.
//
// # Basic Usage
//
//	s := squares.NewState()
//	alice, _ := s.AddPlayer("Alice", uuid.NewString(), rng)
//	_ = s.Claim(alice.ID, squares.Cell{Row: 3, Col: 7})
//	// ... once every player reached the base quota
//	extras, _ := s.AssignExtras(rng)
//	_ = s.Lock(rng)
//	res, _ := s.ComputeWinner(squares.Q1, 17, 14)
//
// # Randomness
//
// Operations that draw random numbers (extra-player selection, auto-fill,
// digit permutations, fallback colors) take a randutil.Source so tests can
// script the sequence:
//
//	rng := randutil.New(42)
//	s.Lock(rng)
//
// # Persistence
//
// The package does no I/O. State marshals to the durable JSON layout and its
// UnmarshalJSON rejects structurally malformed blobs; Validate checks the
// cross-field invariants and is run by the service before every save.
package squares
