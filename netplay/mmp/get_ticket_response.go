package mmp

// ChatMessageCount is the fixed size of a player's quick-chat palette.
// Responses carrying a palette of any other length are normalized to the
// default palette rather than rejected.
const ChatMessageCount = 16

// PlayerRank carries optional ladder standing for a player. The server omits
// it entirely for unrated players, so every field defaults to zero.
type PlayerRank struct {
	Rating            float64 `json:"rating"`
	GlobalPlacing     uint16  `json:"globalPlacement"`
	RegionalPlacing   uint16  `json:"regionalPlacement"`
	RatingUpdateCount uint32  `json:"updateCount"`
}

// PlayerEntry is one roster slot in an assignment. Port is 1-based.
// IPAddressLAN is nil when the player reported no LAN address.
type PlayerEntry struct {
	IsLocalPlayer bool       `json:"isLocalPlayer"`
	UID           string     `json:"uid"`
	DisplayName   string     `json:"displayName"`
	ConnectCode   string     `json:"connectCode"`
	Port          int        `json:"port"`
	IPAddress     string     `json:"ipAddress"`
	IPAddressLAN  *string    `json:"ipAddressLan"`
	IsBot         bool       `json:"isBot"`
	ChatMessages  []string   `json:"chatMessages"`
	Rank          PlayerRank `json:"rank"`
}

// GetTicketResponse is the server's answer to an assignment poll. While the
// ticket is still queued the server simply stays quiet; once an assignment
// exists, MatchID, Players, Stages and IsHost are populated. On rejection
// Error carries the reason and LatestVersion may carry a required client
// version.
type GetTicketResponse struct {
	Type          string        `json:"type"`
	LatestVersion string        `json:"latestVersion"`
	MatchID       string        `json:"matchId"`
	Error         string        `json:"error"`
	Players       []PlayerEntry `json:"players"`
	Stages        []uint16      `json:"stages"`
	IsHost        bool          `json:"isHost"`
}

// Validate checks the discriminator only. Error-field handling is left to the
// caller because a rejection has a side effect (the latest-version report)
// that does not belong in the message type.
func (m *GetTicketResponse) Validate() error {
	if m.Type != TypeGetTicketResponse {
		return &UnexpectedMessageError{Got: m.Type, Want: TypeGetTicketResponse}
	}
	return nil
}
