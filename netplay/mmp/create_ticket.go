package mmp

// Message discriminators used by the matchmaking service. Every payload
// carries one in its "type" field.
const (
	TypeCreateTicket         = "create-ticket"
	TypeCreateTicketResponse = "create-ticket-resp"
	TypeGetTicketResponse    = "get-ticket-resp"
)

// TicketUser carries the identity fields the server needs to track a ticket.
type TicketUser struct {
	UID         string `json:"uid"`
	PlayKey     string `json:"playKey"`
	ConnectCode string `json:"connectCode"`
	DisplayName string `json:"displayName"`
}

// TicketSearch describes who the ticket wants to be matched against.
// ConnectCode is only meaningful for direct-connect style modes.
type TicketSearch struct {
	Mode        PlayMode `json:"mode"`
	ConnectCode string   `json:"connectCode"`
}

// CreateTicket is the client-to-server ticket submission request.
type CreateTicket struct {
	Type         string       `json:"type"`
	User         TicketUser   `json:"user"`
	Search       TicketSearch `json:"search"`
	AppVersion   string       `json:"appVersion"`
	IPAddressLAN string       `json:"ipAddressLan"`
}

// NewCreateTicket assembles a submission request with the discriminator set.
func NewCreateTicket(user TicketUser, search TicketSearch, appVersion, lanAddr string) *CreateTicket {
	return &CreateTicket{
		Type:         TypeCreateTicket,
		User:         user,
		Search:       search,
		AppVersion:   appVersion,
		IPAddressLAN: lanAddr,
	}
}
