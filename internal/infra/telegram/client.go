// internal/infra/telegram/client.go
package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	domain "teleword/internal/domain/telegram"
	"teleword/internal/infra/httpsclient"
	"teleword/internal/infra/multipart"

	"github.com/sirupsen/logrus"
)

const defaultAPIEndpoint = "https://api.telegram.org"

// Field names the Bot API expects per send method.
const (
	fieldChatID          = "chat_id"
	fieldText            = "text"
	fieldCaption         = "caption"
	fieldParseMode       = "parse_mode"
	fieldSilent          = "disable_notifications"
	fieldStreaming       = "supports_streaming"
	attachmentFieldPhoto = "photo"
	attachmentFieldVideo = "video"
)

// BotClient implements the domain Client interface over the hand-built
// multipart encoder and HTTPS transport. It holds the per-session state:
// token, recipient chat, silence flag, formatting mode and trust mode.
//
// Notifications are suppressed by default; callers opt back in with
// EnableNotifications. A BotClient is not safe for concurrent use.
type BotClient struct {
	token     string
	chatID    int64
	silent    bool
	parseMode string
	endpoint  string
	transport *httpsclient.Transport
	log       *logrus.Logger
}

func NewBotClient(token string, chatID int64, log *logrus.Logger) *BotClient {
	return &BotClient{
		token:     token,
		chatID:    chatID,
		silent:    true,
		endpoint:  defaultAPIEndpoint,
		transport: httpsclient.New(log),
		log:       log,
	}
}

// EnableNotifications makes sent messages audible for the recipient.
func (c *BotClient) EnableNotifications() {
	c.silent = false
}

// SetParseMode sets the text-formatting mode (e.g. "markdown") for
// subsequent sends.
func (c *BotClient) SetParseMode(mode string) {
	c.parseMode = mode
}

// EnableInsecureConnection disables certificate verification on the
// underlying transport.
func (c *BotClient) EnableInsecureConnection() {
	c.transport.EnableInsecure()
}

// SetEndpoint overrides the Bot API base URL. Used by tests and
// self-hosted Bot API servers.
func (c *BotClient) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// GetIdentity calls getMe and returns the bot's own account identity, or
// nil if the remote API rejected the call.
func (c *BotClient) GetIdentity() (*domain.Identity, error) {
	status, resp, err := c.callAPI("getMe", multipart.NewEnvelope(), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, nil
	}

	var parsed struct {
		OK     bool            `json:"ok"`
		Result domain.Identity `json:"result"`
	}
	if err := json.Unmarshal(resp, &parsed); err != nil {
		return nil, fmt.Errorf("decode getMe response: %w", err)
	}
	return &parsed.Result, nil
}

// SendMessage sends a text message to the session's chat and reports
// whether the remote API accepted it.
func (c *BotClient) SendMessage(text string) (bool, error) {
	envelope := c.newEnvelope()
	envelope.Set(fieldText, text)

	c.log.Debugf("Trying to send text message to chat ID %d...", c.chatID)
	status, _, err := c.callAPI("sendMessage", envelope, nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// SendPhoto reads the file at path fully into memory and sends it as a
// photo, with an optional caption.
func (c *BotClient) SendPhoto(path, caption string) (bool, error) {
	envelope := c.newEnvelope()
	if caption != "" {
		envelope.Set(fieldCaption, caption)
	}

	attachment, err := readAttachment(attachmentFieldPhoto, path)
	if err != nil {
		return false, err
	}

	c.log.Debugf("Trying to send photo '%s' to chat ID %d...", path, c.chatID)
	status, _, err := c.callAPI("sendPhoto", envelope, []multipart.Attachment{attachment})
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// SendVideo reads the file at path fully into memory and sends it as a
// video, with an optional caption and streaming-capability flag.
func (c *BotClient) SendVideo(path, caption string, streaming bool) (bool, error) {
	envelope := c.newEnvelope()
	if caption != "" {
		envelope.Set(fieldCaption, caption)
	}
	if streaming {
		envelope.SetBool(fieldStreaming, true)
	}

	attachment, err := readAttachment(attachmentFieldVideo, path)
	if err != nil {
		return false, err
	}

	c.log.Debugf("Trying to send video '%s' to chat ID %d...", path, c.chatID)
	status, _, err := c.callAPI("sendVideo", envelope, []multipart.Attachment{attachment})
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// newEnvelope builds the base field set every send operation shares.
func (c *BotClient) newEnvelope() *multipart.Envelope {
	envelope := multipart.NewEnvelope()
	envelope.SetInt(fieldChatID, c.chatID)
	envelope.SetBool(fieldSilent, c.silent)
	if c.parseMode != "" {
		envelope.Set(fieldParseMode, c.parseMode)
	}
	return envelope
}

// callAPI encodes the request, posts it and logs the raw outcome. Any
// status the server answers with is returned as data; only a request that
// never completed is an error.
func (c *BotClient) callAPI(method string, envelope *multipart.Envelope, attachments []multipart.Attachment) (int, []byte, error) {
	body, boundary := multipart.Encode(envelope, attachments)

	url := fmt.Sprintf("%s/bot%s/%s", c.endpoint, c.token, method)
	status, resp, err := c.transport.Post(url, body, boundary)
	if err != nil {
		return 0, nil, fmt.Errorf("call %s: %w", method, err)
	}

	c.log.Debugf("Response status: %d", status)
	c.log.Debugf("Response data: %s", resp)
	if status != http.StatusOK {
		c.log.Errorf("Call to Bot API failed with code %d: %s", status, resp)
	}
	return status, resp, nil
}

// readAttachment loads the whole file into memory before any network I/O
// begins; the handle is closed by the time the request is built.
func readAttachment(field, path string) (multipart.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return multipart.Attachment{}, fmt.Errorf("read attachment: %w", err)
	}
	return multipart.Attachment{
		Field:    field,
		Filename: filepath.Base(path),
		Data:     data,
	}, nil
}
