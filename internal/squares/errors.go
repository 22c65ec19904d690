package squares

import "errors"

// Validation failures. The state is left untouched when any of these is returned.
var (
	ErrEmptyName           = errors.New("squares: player name is empty")
	ErrDuplicateName       = errors.New("squares: player name already in use")
	ErrUnknownPlayer       = errors.New("squares: player not found")
	ErrOverQuota           = errors.New("squares: existing claims exceed the quota for the new player count")
	ErrInvalidCell         = errors.New("squares: cell out of range")
	ErrBoardLocked         = errors.New("squares: board is locked")
	ErrSquareTaken         = errors.New("squares: square already claimed")
	ErrQuotaReached        = errors.New("squares: player quota reached")
	ErrNotOwner            = errors.New("squares: square not owned by player")
	ErrNoPlayers           = errors.New("squares: no players")
	ErrExtrasAssigned      = errors.New("squares: extra squares already assigned")
	ErrBaseRoundIncomplete = errors.New("squares: base round incomplete")
	ErrBoardFull           = errors.New("squares: no unclaimed squares")
	ErrNotExtraPlayer      = errors.New("squares: player is not entitled to an extra square")
	ErrAlreadyLocked       = errors.New("squares: board already locked")
	ErrNotLocked           = errors.New("squares: board is not locked")
	ErrCannotRandomize     = errors.New("squares: numbers can only be randomized on a locked, full board")
	ErrDigitsUnassigned    = errors.New("squares: row and column numbers not assigned")
	ErrInvalidCheckpoint   = errors.New("squares: invalid checkpoint")
	ErrInvalidScore        = errors.New("squares: score must not be negative")
	ErrSquareUnclaimed     = errors.New("squares: winning square is unclaimed")
	ErrCheckpointRecorded  = errors.New("squares: checkpoint already has a winner")
	ErrNoWinner            = errors.New("squares: checkpoint has no recorded winner")
)

// ErrMalformedState marks structural failures: a blob that cannot describe a
// board, or a state that breaks an invariant.
var ErrMalformedState = errors.New("squares: malformed state")
