package game

import "errors"

// User-facing failure conditions. Callers render these as chat messages;
// none of them leave the game in a changed state.
var (
	ErrGameNotFound        = errors.New("game not found")
	ErrInvalidState        = errors.New("game is not in the right state")
	ErrInsufficientPlayers = errors.New("not enough players")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrInvalidTarget       = errors.New("invalid target")
	ErrNotAddressed        = errors.New("you were not asked")
	ErrBallotAlreadyOpen   = errors.New("ballot already open")
	ErrTooFewPlayers       = errors.New("too few players for voting")
	ErrInvalidOption       = errors.New("invalid ballot option")
	ErrNotSpy              = errors.New("only the spy can do that")
	ErrChatHasActiveGame   = errors.New("chat already has an active game")
)

// IsUserError reports whether err is an expected, recoverable condition
// rather than an internal or persistence failure.
func IsUserError(err error) bool {
	for _, known := range []error{
		ErrGameNotFound,
		ErrInvalidState,
		ErrInsufficientPlayers,
		ErrNotYourTurn,
		ErrInvalidTarget,
		ErrNotAddressed,
		ErrBallotAlreadyOpen,
		ErrTooFewPlayers,
		ErrInvalidOption,
		ErrNotSpy,
		ErrChatHasActiveGame,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
