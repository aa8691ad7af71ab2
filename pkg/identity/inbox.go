package identity

import (
	"errors"
	"log/slog"
	"strings"

	httpclient "github.com/P2B-ARIF/facebook-info-api-backend/pkg/http-client"
)

var ErrInvalidEmailAddress = errors.New("invalid email address")

// InboxClient reads disposable inboxes through the 1secmail getMessages API.
type InboxClient struct {
	Client httpclient.ClientConfig
}

type InboxMessage struct {
	ID      int64  `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

func (c InboxClient) FetchMessages(email string) ([]InboxMessage, error) {
	login, domain, err := splitEmailAddress(email)
	if err != nil {
		return nil, err
	}

	var messages []InboxMessage
	query := map[string]string{
		"action": "getMessages",
		"login":  login,
		"domain": domain,
	}
	if err := c.Client.RunHTTPGetCall("/", query, &messages); err != nil {
		slog.Error("error fetching inbox", slog.String("error", err.Error()))
		return nil, err
	}
	return messages, nil
}

func splitEmailAddress(email string) (login string, domain string, err error) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidEmailAddress
	}
	return parts[0], parts[1], nil
}
