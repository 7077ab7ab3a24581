package validators

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is matched by every *FieldErrors.
	ErrInvalidInput = errors.New("validation failed")
)

// FieldErrors lists every rule violation found in one value. Messages are
// ordered the way fields are declared.
type FieldErrors struct {
	Messages []string
}

func (e *FieldErrors) Error() string {
	return ErrInvalidInput.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *FieldErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *FieldErrors) add(format string, args ...any) {
	e.Messages = append(e.Messages, fmt.Sprintf(format, args...))
}

func (e *FieldErrors) orNil() error {
	if len(e.Messages) == 0 {
		return nil
	}
	return e
}
