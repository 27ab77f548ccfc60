package notify

import (
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackPoster posts digest messages to a Slack channel.
type SlackPoster struct {
	client    slackClient
	channelID string
}

// NewSlackPoster creates a SlackPoster from a bot token and channel.
// A mock client may be injected for tests.
func NewSlackPoster(botToken, channelID string, client slackClient) (*SlackPoster, error) {
	if client == nil {
		if botToken == "" {
			return nil, fmt.Errorf("notify: slack bot token is required")
		}
		client = slackapi.New(botToken)
	}
	if channelID == "" {
		return nil, fmt.Errorf("notify: slack channel is required")
	}
	return &SlackPoster{client: client, channelID: channelID}, nil
}

// Post sends the text to the configured channel.
func (p *SlackPoster) Post(text string) error {
	_, _, err := p.client.PostMessage(p.channelID, slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("notify: slack post: %w", err)
	}
	return nil
}
