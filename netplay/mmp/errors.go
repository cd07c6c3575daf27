package mmp

import "fmt"

// UnexpectedMessageError reports a payload whose discriminator did not match
// the message the client was waiting for.
type UnexpectedMessageError struct {
	Got  string
	Want string
}

func (e *UnexpectedMessageError) Error() string {
	return fmt.Sprintf("unexpected message type %q, want %q", e.Got, e.Want)
}

// ServerError carries an error string reported by the matchmaking service
// itself. The text is shown to the user verbatim.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}
