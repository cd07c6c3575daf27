// Package user holds the local player's identity and exposes it to the
// matchmaking engine through cheap, shareable handles.
package user

import "sync"

// ChatMessageCount is the fixed size of the quick-chat palette.
const ChatMessageCount = 16

var defaultChatMessages = [ChatMessageCount]string{
	"ggs",
	"one more",
	"bring it",
	"good luck",
	"have fun",
	"nice one",
	"too good",
	"close one",
	"lol",
	"wow",
	"oof",
	"clutch",
	"respect",
	"sorry",
	"gotta go",
	"rematch?",
}

// DefaultChatMessages returns a fresh copy of the stock quick-chat palette.
func DefaultChatMessages() []string {
	messages := make([]string, ChatMessageCount)
	copy(messages, defaultChatMessages[:])
	return messages
}

// Info is the identity snapshot the engine reads when submitting tickets.
type Info struct {
	UID           string
	PlayKey       string
	ConnectCode   string
	DisplayName   string
	LatestVersion string
	ChatMessages  []string
}

// Manager guards the current identity. Handles are cheap to copy and safe to
// share across goroutines; the engine only ever reads, except for the
// latest-version side channel written when the server reports an outdated
// client.
type Manager struct {
	mu   *sync.RWMutex
	info *Info
}

// NewManager returns a manager seeded with the given identity. An empty chat
// palette is replaced with the stock one.
func NewManager(info Info) *Manager {
	if len(info.ChatMessages) != ChatMessageCount {
		info.ChatMessages = DefaultChatMessages()
	}
	return &Manager{
		mu:   &sync.RWMutex{},
		info: &info,
	}
}

// Get runs fn against the current identity under a read lock. fn must not
// retain the pointer.
func (m *Manager) Get(fn func(info *Info)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.info)
}

// OverwriteLatestVersion records a newer client version reported by the
// matchmaking server.
func (m *Manager) OverwriteLatestVersion(version string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info.LatestVersion = version
}
