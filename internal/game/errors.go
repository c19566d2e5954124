package game

import "errors"

var (
	ErrEmptyPile       = errors.New("pile is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrFatalInput      = errors.New("fatal input failure")
	ErrGameOver        = errors.New("game is over")
	ErrUnknownCard     = errors.New("unknown card")
)

// InvalidChoiceError describes a rejected oracle selection. It is reported
// back to the seat and the question is asked again; it never leaves the engine.
type InvalidChoiceError string

func (e InvalidChoiceError) Error() string { return "invalid choice: " + string(e) }

func invalidChoice(reason string) error { return InvalidChoiceError(reason) }
