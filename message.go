package betabrite

import (
	"fmt"
	"os"
)

// MessageSource supplies the text to display.
type MessageSource interface {
	Message() ([]byte, error)
}

// Literal is message text given directly.
type Literal string

// Message returns the text as given, empty included.
func (l Literal) Message() ([]byte, error) {
	return []byte(l), nil
}

// File is the path of a file whose whole content is the message.
type File string

// Message stats the file and reads all of it. Any failure wraps
// ErrMessageUnavailable.
func (f File) Message() ([]byte, error) {
	path := string(f)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMessageUnavailable, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMessageUnavailable, err)
	}
	return data, nil
}

// SourceFor picks the message source selected by o. With neither a message
// nor a file the message is empty, which blanks the sign.
func SourceFor(o Options) MessageSource {
	switch {
	case o.MessageFile != nil:
		return File(*o.MessageFile)
	case o.Message != nil:
		return Literal(*o.Message)
	default:
		return Literal("")
	}
}
