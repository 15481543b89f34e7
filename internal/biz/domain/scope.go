package domain

// ChatType represents the chat type
type ChatType string

const (
	ChatTypeGroup ChatType = "group"
	ChatTypeP2P   ChatType = "p2p"
)

// ChatScope identifies the conversation thread a cache entry belongs to.
// Private chat: the sender alone. Group chat: (group, sender), so follow-up
// state never leaks between members of the same group.
type ChatScope struct {
	UserID  string
	GroupID string // empty for private chat
}

// PrivateScope builds a scope for a private chat
func PrivateScope(userID string) ChatScope {
	return ChatScope{UserID: userID}
}

// GroupScope builds a scope for a sender within a group
func GroupScope(groupID, userID string) ChatScope {
	return ChatScope{UserID: userID, GroupID: groupID}
}

// IsGroup checks if this scope belongs to a group chat
func (s ChatScope) IsGroup() bool {
	return s.GroupID != ""
}

// Key returns the cache key for this scope
func (s ChatScope) Key() string {
	if s.GroupID == "" {
		return "p2p:" + s.UserID
	}
	return "group:" + s.GroupID + ":" + s.UserID
}
