package identity

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	httpclient "github.com/P2B-ARIF/facebook-info-api-backend/pkg/http-client"
)

func TestGeneratePhoneNumber(t *testing.T) {
	numberRule := regexp.MustCompile(`^018\d{8}$`)
	for i := 0; i < 20; i++ {
		number := GeneratePhoneNumber()
		if !numberRule.MatchString(number) {
			t.Errorf("unexpected phone number: %s", number)
		}
	}
}

func TestTempEmail(t *testing.T) {
	emailRule := regexp.MustCompile(`^[a-z0-9]{8}@1secmail\.com$`)
	email := TempEmail()
	if !emailRule.MatchString(email) {
		t.Errorf("unexpected temp email: %s", email)
	}
}

func TestRandomName(t *testing.T) {
	nameList = nil
	if _, err := RandomName(); err == nil {
		t.Error("expected error with empty name list")
	}

	tmpFile := filepath.Join(t.TempDir(), "names.json")
	if err := os.WriteFile(tmpFile, []byte(`["Anna","Mia","Lena"]`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LoadNames(tmpFile); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	name, err := RandomName()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if name != "Anna" && name != "Mia" && name != "Lena" {
		t.Errorf("unexpected name: %s", name)
	}
}

func TestFetchCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tok/MYSECRET" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"123456"}`))
	}))
	defer server.Close()

	client := TwoFAClient{Client: httpclient.ClientConfig{RootURL: server.URL, Timeout: time.Second}}
	code, err := client.FetchCode("MYSECRET")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if code != "123456" {
		t.Errorf("unexpected code: %s", code)
	}

	if _, err := client.FetchCode("OTHERSECRET"); err == nil {
		t.Error("expected error for unknown secret")
	}
}

func TestFetchMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "getMessages" || q.Get("login") != "abc123" || q.Get("domain") != "1secmail.com" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"from":"noreply@test.de","subject":"hello","date":"2025-03-01 10:00:00"}]`))
	}))
	defer server.Close()

	client := InboxClient{Client: httpclient.ClientConfig{RootURL: server.URL, Timeout: time.Second}}
	messages, err := client.FetchMessages("abc123@1secmail.com")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(messages) != 1 || messages[0].Subject != "hello" {
		t.Errorf("unexpected messages: %v", messages)
	}

	if _, err := client.FetchMessages("not-an-email"); err == nil {
		t.Error("expected error for malformed address")
	}
}
