package identity

import (
	"errors"
	"log/slog"

	httpclient "github.com/P2B-ARIF/facebook-info-api-backend/pkg/http-client"
)

var ErrEmptyCode = errors.New("provider returned no code")

// TwoFAClient fetches time-based codes from the 2fa.live style provider.
type TwoFAClient struct {
	Client httpclient.ClientConfig
}

func (c TwoFAClient) FetchCode(secret string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	if err := c.Client.RunHTTPGetCall("/tok/"+secret, nil, &res); err != nil {
		slog.Error("error fetching 2FA code", slog.String("error", err.Error()))
		return "", err
	}
	if res.Token == "" {
		return "", ErrEmptyCode
	}
	return res.Token, nil
}
