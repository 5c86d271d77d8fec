package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	tb "gopkg.in/telebot.v3"
)

// Identify checks the bot token against the Bot API and returns the bot username.
func Identify(apiURL, token string, timeout time.Duration) (string, error) {
	bot, err := tb.NewBot(tb.Settings{
		URL:    apiURL,
		Token:  token,
		Client: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return "", fmt.Errorf("create telegram bot: %w", err)
	}
	if bot.Me == nil {
		return "", errors.New("create telegram bot: empty getMe result")
	}

	return bot.Me.Username, nil
}
