package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/nahar/internal/logger"
)

// Error pairs an underlying cause with text meant for the terminal.
type Error struct {
	// Msg replaces the cause's text in UserMessage. Empty keeps the cause's.
	Msg string
	// Hint is a follow-up action printed under the error.
	Hint string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Msg
	case e.Msg == "":
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) UserMessage() string {
	if e.Msg == "" {
		return UserMessage(e.Err)
	}
	return e.Msg
}

// Wrap attaches a user-facing message to err. Nil stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Msg: msg, Err: err}
}

// WithHint attaches a follow-up action to err. Nil stays nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &Error{Err: err, Hint: hint}
}

// HintOf returns the outermost hint in err's chain.
func HintOf(err error) string {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return ""
		}
		if e.Hint != "" {
			return e.Hint
		}
		err = e.Err
	}
	return ""
}

// Format renders err for stderr with an "Error: " prefix and any hint.
func Format(err error) string {
	if err == nil {
		return ""
	}
	out := fmt.Sprintf("Error: %v", err)
	if hint := HintOf(err); hint != "" {
		out += "\nHint: " + hint
	}
	return out
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	logger.Error("Command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}

type userMessenger interface {
	UserMessage() string
}

// UserMessage returns the first message in err's chain meant for the user,
// falling back to the error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var um userMessenger
	if stderrors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}
