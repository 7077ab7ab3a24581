package transfer

import (
	"errors"
	"strings"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrLoadRelation   = errors.New("error loading relation")
)

// PayloadError lists every problem found while decoding a request payload.
type PayloadError struct {
	Messages []string
}

func (e *PayloadError) Error() string {
	return ErrInvalidPayload.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *PayloadError) Is(target error) bool {
	return target == ErrInvalidPayload
}
