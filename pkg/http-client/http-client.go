package httpclient

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ClientConfig struct {
	RootURL string
	APIKey  string
	Timeout time.Duration
}

// RunHTTPGetCall fetches the given path relative to the client's root URL and
// decodes the JSON response into target.
func (cConfig ClientConfig) RunHTTPGetCall(pathname string, query map[string]string, target interface{}) error {
	client := &http.Client{
		Timeout: cConfig.Timeout,
	}

	url := cConfig.RootURL + pathname
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		slog.Error("unexpected error in preparing http request", slog.String("error", err.Error()))
		return err
	}
	if cConfig.APIKey != "" {
		req.Header.Set("Api-Key", cConfig.APIKey)
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Error("unexpected error in http call", slog.String("error", err.Error()))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(target)
	if err != nil {
		slog.Error("error decoding response", slog.String("error", err.Error()))
		return err
	}
	return nil
}
