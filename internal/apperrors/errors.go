package apperrors

import (
	"errors"
	"fmt"

	"github.com/palemoky/go-fish/internal/protocol"
)

// GameError 牌桌错误，按错误码区分类别
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Is matches any GameError carrying the same code, so wrapped detail errors
// still compare equal to the sentinel of their category.
func (e *GameError) Is(target error) bool {
	var ge *GameError
	if !errors.As(target, &ge) {
		return false
	}
	return ge.Code == e.Code
}

// 预定义错误
var (
	ErrPrecondition  = &GameError{Code: protocol.ErrCodePrecondition, Message: protocol.ErrorMessages[protocol.ErrCodePrecondition]}
	ErrLookup        = &GameError{Code: protocol.ErrCodeLookup, Message: protocol.ErrorMessages[protocol.ErrCodeLookup]}
	ErrConfiguration = &GameError{Code: protocol.ErrCodeConfiguration, Message: protocol.ErrorMessages[protocol.ErrCodeConfiguration]}
	ErrInvalidMsg    = &GameError{Code: protocol.ErrCodeInvalidMsg, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidMsg]}
	ErrUnknownPlayer = &GameError{Code: protocol.ErrCodeUnknownPlayer, Message: protocol.ErrorMessages[protocol.ErrCodeUnknownPlayer]}
)

// Precondition wraps ErrPrecondition with call-site detail.
func Precondition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

// Lookup wraps ErrLookup with call-site detail.
func Lookup(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLookup, fmt.Sprintf(format, args...))
}

// Configuration wraps ErrConfiguration with call-site detail.
func Configuration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Code returns the GameError code carried by err, or ErrCodeUnknown.
func Code(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
