package notify

import (
	"github.com/seedbed/trellis/internal/config"
)

// Poster sends a plain-text message to one chat destination.
type Poster interface {
	Post(text string) error
}

// PostersFromConfig builds a poster for every configured destination.
// An empty config yields an empty slice, not an error.
func PostersFromConfig(cfg config.NotifyConfig) ([]Poster, error) {
	var posters []Poster

	if cfg.Slack.BotToken != "" {
		p, err := NewSlackPoster(cfg.Slack.BotToken, cfg.Slack.Channel, nil)
		if err != nil {
			return nil, err
		}
		posters = append(posters, p)
	}

	if cfg.Discord.BotToken != "" {
		p, err := NewDiscordPoster(cfg.Discord.BotToken, cfg.Discord.Channel, nil)
		if err != nil {
			return nil, err
		}
		posters = append(posters, p)
	}

	return posters, nil
}
