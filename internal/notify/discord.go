package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// discordSession abstracts the discordgo.Session methods we use,
// enabling test mocks.
type discordSession interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordPoster posts digest messages to a Discord channel.
type DiscordPoster struct {
	session   discordSession
	channelID string
}

// NewDiscordPoster creates a DiscordPoster from a bot token and channel.
// A mock session may be injected for tests.
func NewDiscordPoster(botToken, channelID string, session discordSession) (*DiscordPoster, error) {
	if session == nil {
		if botToken == "" {
			return nil, fmt.Errorf("notify: discord bot token is required")
		}
		s, err := discordgo.New("Bot " + botToken)
		if err != nil {
			return nil, fmt.Errorf("notify: discord session: %w", err)
		}
		session = s
	}
	if channelID == "" {
		return nil, fmt.Errorf("notify: discord channel is required")
	}
	return &DiscordPoster{session: session, channelID: channelID}, nil
}

// Post sends the text to the configured channel.
func (p *DiscordPoster) Post(text string) error {
	if _, err := p.session.ChannelMessageSend(p.channelID, text); err != nil {
		return fmt.Errorf("notify: discord post: %w", err)
	}
	return nil
}
