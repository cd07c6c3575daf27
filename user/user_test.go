package user

import "testing"

func TestDefaultChatMessages(t *testing.T) {
	messages := DefaultChatMessages()
	if len(messages) != ChatMessageCount {
		t.Fatalf("len(DefaultChatMessages()) = %d, want %d", len(messages), ChatMessageCount)
	}

	// Returned palette must be a copy the caller can mutate freely.
	messages[0] = "mutated"
	if got := DefaultChatMessages()[0]; got == "mutated" {
		t.Error("DefaultChatMessages() shares backing storage between calls")
	}
}

func TestManagerSeedsDefaultPalette(t *testing.T) {
	m := NewManager(Info{UID: "u1", ChatMessages: []string{"just one"}})
	m.Get(func(info *Info) {
		if len(info.ChatMessages) != ChatMessageCount {
			t.Errorf("len(ChatMessages) = %d, want %d", len(info.ChatMessages), ChatMessageCount)
		}
	})
}

func TestManagerOverwriteLatestVersion(t *testing.T) {
	m := NewManager(Info{UID: "u1"})
	m.OverwriteLatestVersion("9.9.9")

	var got string
	m.Get(func(info *Info) { got = info.LatestVersion })
	if got != "9.9.9" {
		t.Errorf("LatestVersion = %q, want %q", got, "9.9.9")
	}
}
