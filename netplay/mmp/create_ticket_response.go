package mmp

// CreateTicketResponse acknowledges a ticket submission. A populated Error
// means the server rejected the ticket.
type CreateTicketResponse struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Validate checks the discriminator and any server-reported error. The
// returned errors distinguish a mismatched message from a rejection so
// callers can surface the server's own text to the user.
func (m *CreateTicketResponse) Validate() error {
	if m.Type != TypeCreateTicketResponse {
		return &UnexpectedMessageError{Got: m.Type, Want: TypeCreateTicketResponse}
	}
	if m.Error != "" {
		return &ServerError{Message: m.Error}
	}
	return nil
}
