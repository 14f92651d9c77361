package game

// Messenger is the outbound messaging collaborator. Every call is
// fire-and-forget from the engine's point of view: delivery failures are
// logged by the caller side and never fail a game operation.
type Messenger interface {
	// SendPrivate delivers a message to one user outside the game chat.
	SendPrivate(userID int64, text string) error
	// Broadcast posts a message to the game's chat.
	Broadcast(chatID int64, text string) error
	// OpenPoll publishes a ballot with the given option list. Responses
	// arrive asynchronously as CastVote calls carrying option indices.
	OpenPoll(chatID int64, ballotID, question string, options []string) error
	// PlayerName resolves a display name, best effort.
	PlayerName(chatID, userID int64) (string, error)
}

type nopMessenger struct{}

func (nopMessenger) SendPrivate(int64, string) error                { return nil }
func (nopMessenger) Broadcast(int64, string) error                  { return nil }
func (nopMessenger) OpenPoll(int64, string, string, []string) error { return nil }
func (nopMessenger) PlayerName(int64, int64) (string, error)        { return "", nil }

// NopMessenger discards everything. Used when no chat surface is attached.
func NopMessenger() Messenger { return nopMessenger{} }

// displayName resolves a user's name through the messenger, falling back to
// the roster name and then a generic label when the lookup fails.
func (e *Engine) displayName(chatID, userID int64, fallback string) string {
	if name, err := e.msg.PlayerName(chatID, userID); err == nil && name != "" {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return "Unknown"
}
