package app

import (
	"errors"
	"fmt"

	"teleword/internal/domain/telegram"
	"teleword/internal/domain/upload"

	"github.com/sirupsen/logrus"
)

// ErrSendFailed means the Bot API answered the request but rejected it.
// Transport and filesystem problems surface as their own errors.
var ErrSendFailed = errors.New("the Bot API rejected the request")

// SendService orchestrates one send operation: pre-flight validation of the
// upload (unless forced), the remote call, and the outcome the CLI maps to
// an exit code.
type SendService struct {
	client telegram.Client
	log    *logrus.Logger
}

func NewSendService(client telegram.Client, log *logrus.Logger) *SendService {
	return &SendService{client: client, log: log}
}

// SendText delivers a text message.
func (s *SendService) SendText(text string) error {
	ok, err := s.client.SendMessage(text)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if !ok {
		return fmt.Errorf("send message: %w", ErrSendFailed)
	}
	s.log.Info("Successfully sent message.")
	return nil
}

// SendPhoto validates the file against the photo limits and delivers it.
// With force set, validation is skipped entirely.
func (s *SendService) SendPhoto(path, caption string, force bool) error {
	if !force {
		if err := upload.Check(upload.PhotoMediaType, path, upload.PhotoSizeLimit); err != nil {
			return err
		}
	}

	ok, err := s.client.SendPhoto(path, caption)
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	if !ok {
		return fmt.Errorf("send photo: %w", ErrSendFailed)
	}
	s.log.Info("Successfully sent photo.")
	return nil
}

// SendVideo validates the file against the video limits and delivers it.
// With force set, validation is skipped entirely.
func (s *SendService) SendVideo(path, caption string, streaming, force bool) error {
	if !force {
		if err := upload.Check(upload.VideoMediaType, path, upload.VideoSizeLimit); err != nil {
			return err
		}
	}

	ok, err := s.client.SendVideo(path, caption, streaming)
	if err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	if !ok {
		return fmt.Errorf("send video: %w", ErrSendFailed)
	}
	s.log.Info("Successfully sent video.")
	return nil
}

// Identify runs the identity check and returns the bot account, or
// ErrSendFailed when the remote API rejected the token.
func (s *SendService) Identify() (*telegram.Identity, error) {
	identity, err := s.client.GetIdentity()
	if err != nil {
		return nil, fmt.Errorf("identity check: %w", err)
	}
	if identity == nil {
		return nil, fmt.Errorf("identity check: %w", ErrSendFailed)
	}
	return identity, nil
}
