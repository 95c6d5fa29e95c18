package session

import (
	"errors"
	"fmt"

	"github.com/robalobadob/battleships/internal/config"
	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/store"
)

var (
	ErrInvalidMatchID     = errors.New("invalid match id")
	ErrAlreadyInitialized = errors.New("match already initialized")
	ErrNotFound           = errors.New("match not found")
	ErrAlreadyShot        = errors.New("cell already shot")
	ErrMatchOver          = errors.New("match is over")

	// ErrComputerAlreadyShot is ErrAlreadyShot caused by the computer's
	// counter-shot rather than the human's.
	ErrComputerAlreadyShot = fmt.Errorf("computer %w", ErrAlreadyShot)
)

// Kind groups errors by how a caller should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindState:
		return "state"
	default:
		return "internal"
	}
}

// Classify reports the Kind of err. Unknown errors are internal.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrNotFound), errors.Is(err, store.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyInitialized),
		errors.Is(err, ErrAlreadyShot),
		errors.Is(err, ErrMatchOver):
		return KindState
	case errors.Is(err, ErrInvalidMatchID),
		errors.Is(err, game.ErrInvalidPosition),
		errors.Is(err, game.ErrMalformedGrid),
		errors.Is(err, config.ErrInvalid):
		return KindValidation
	}
	return KindInternal
}
