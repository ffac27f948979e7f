// Package main is the entry point for the teleword CLI, a one-shot sender
// for the Telegram Bot API.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"teleword/internal/app"
	"teleword/internal/infra/config"
	"teleword/internal/infra/logger"
	"teleword/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	token    string
	silent   bool
	markdown bool
	force    bool
	insecure bool
	verbose  bool
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "teleword",
		Short:         "Send text, photos and videos to a Telegram chat",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.token, "token", "", "Set Bot API token")
	root.PersistentFlags().BoolVar(&opts.silent, "silent", false, "Do not notify recipient of the message")
	root.PersistentFlags().BoolVar(&opts.markdown, "markdown", false, "Use Markdown formatting for text and captions")
	root.PersistentFlags().BoolVar(&opts.force, "force", false, "Skip upload sanity checks")
	root.PersistentFlags().BoolVar(&opts.insecure, "insecure", false, "Skip certificate verification")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log debug information")

	root.AddCommand(textCmd(opts), photoCmd(opts), videoCmd(opts), whoamiCmd(opts))
	return root
}

func textCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "text <chat-id> <text>",
		Short: "Send a text message ('-' to read it from STDIN)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			service, log, err := setup(opts, args[0])
			if err != nil {
				return err
			}

			text := args[1]
			if text == "-" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					log.Errorf("Could not read message from STDIN: %v", err)
					return err
				}
				text = string(data)
			}

			if err := service.SendText(text); err != nil {
				log.Errorf("Failed to send message: %v", err)
				return err
			}
			return nil
		},
	}
}

func photoCmd(opts *rootOptions) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:   "photo <chat-id> <path>",
		Short: "Send a photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			service, log, err := setup(opts, args[0])
			if err != nil {
				return err
			}
			if err := service.SendPhoto(args[1], caption, opts.force); err != nil {
				log.Errorf("Failed to send photo: %v", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "Caption for the photo")
	return cmd
}

func videoCmd(opts *rootOptions) *cobra.Command {
	var caption string
	var streaming bool

	cmd := &cobra.Command{
		Use:   "video <chat-id> <path>",
		Short: "Send a video file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			service, log, err := setup(opts, args[0])
			if err != nil {
				return err
			}
			if err := service.SendVideo(args[1], caption, streaming, opts.force); err != nil {
				log.Errorf("Failed to send video: %v", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "Caption for the video")
	cmd.Flags().BoolVar(&streaming, "streaming", false, "This video file supports streaming")
	return cmd
}

func whoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Check the token and print the bot's own identity",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// The identity check addresses no chat.
			service, log, err := setup(opts, "0")
			if err != nil {
				return err
			}

			identity, err := service.Identify()
			if err != nil {
				log.Errorf("Identity check failed: %v", err)
				return err
			}
			fmt.Printf("@%s (id %d)\n", identity.Username, identity.ID)
			return nil
		},
	}
}

// setup builds the logger, resolves configuration and wires the client and
// service for one invocation.
func setup(opts *rootOptions, chatIDArg string) (*app.SendService, *logrus.Logger, error) {
	cfg, err := config.Load(opts.token)
	if err != nil {
		// No token yet, so nothing to redact.
		log := logger.New(opts.verbose, nil)
		log.Error(err)
		return nil, nil, err
	}
	log := logger.New(opts.verbose, []string{cfg.Token})

	chatID, err := strconv.ParseInt(chatIDArg, 10, 64)
	if err != nil {
		log.Errorf("Invalid chat ID %q: must be an integer", chatIDArg)
		return nil, nil, fmt.Errorf("invalid chat ID %q: %w", chatIDArg, err)
	}

	client := telegram.NewBotClient(cfg.Token, chatID, log)
	if cfg.APIEndpoint != "" {
		client.SetEndpoint(cfg.APIEndpoint)
	}
	if !opts.silent {
		client.EnableNotifications()
	}
	if opts.markdown {
		client.SetParseMode("markdown")
	}
	if opts.insecure {
		client.EnableInsecureConnection()
	}

	return app.NewSendService(client, log), log, nil
}
