package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"faraid-engine/internal/model"
)

// Kind tags a ComputationError.
type Kind int

const (
	// InvalidInput: the caller supplied a malformed heir set or estate.
	InvalidInput Kind = iota + 1
	// UnhandledConfiguration: residue remains and no residuary class applies.
	UnhandledConfiguration
	// InvariantViolation: shares are negative or exceed the estate.
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case UnhandledConfiguration:
		return "unhandled configuration"
	case InvariantViolation:
		return "invariant violation"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ComputationError is the only error type Compute returns.
type ComputationError struct {
	Kind     Kind
	Messages []model.CalculationMessage
	// Undistributed is set for UnhandledConfiguration.
	Undistributed decimal.Decimal
	cause         error
}

func (e *ComputationError) Error() string {
	msg := "engine: " + e.Kind.String()
	if len(e.Messages) > 0 {
		msg += ": " + e.Messages[0].Message
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *ComputationError) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is a ComputationError of kind k.
func IsKind(err error, k Kind) bool {
	var ce *ComputationError
	return errors.As(err, &ce) && ce.Kind == k
}
