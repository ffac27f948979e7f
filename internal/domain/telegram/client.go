package telegram

// Client defines an interface for the remote Bot API operations.
// This helps in decoupling the application logic from the transport
// implementation.
type Client interface {
	// GetIdentity performs the identity check (getMe). A nil identity with
	// a nil error means the remote API rejected the token.
	GetIdentity() (*Identity, error)

	// The send operations report whether the remote API accepted the
	// payload. A false result with a nil error is a remote rejection; an
	// error means the request could not be performed at all.
	SendMessage(text string) (bool, error)
	SendPhoto(path, caption string) (bool, error)
	SendVideo(path, caption string, streaming bool) (bool, error)
}

// Identity is the bot account behind a token, as reported by the identity
// check.
type Identity struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}
