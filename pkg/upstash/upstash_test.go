package upstash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClientRejectsMissingSettings(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{URL: "", Token: "token"}); err == nil {
		t.Fatal("NewClient() with empty url should fail")
	}
	if _, err := NewClient(Config{URL: "https://example.upstash.io", Token: "  "}); err == nil {
		t.Fatal("NewClient() with empty token should fail")
	}
	if _, err := NewClient(Config{URL: "not a url", Token: "token"}); err == nil {
		t.Fatal("NewClient() with invalid url should fail")
	}
}

func TestDoSendsCommandWithBearerToken(t *testing.T) {
	t.Parallel()

	var (
		gotAuth    string
		gotCommand []any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(
		Config{URL: server.URL, Token: "secret", Timeout: time.Second},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	result, err := client.Do(context.Background(), []any{"SET", "k", "v"})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if string(result) != `"OK"` {
		t.Fatalf("Do() result = %s", result)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if len(gotCommand) != 3 || gotCommand[0] != "SET" {
		t.Fatalf("command = %#v", gotCommand)
	}
}

func TestDoSurfacesRedisError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"WRONGTYPE Operation against a key"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(
		Config{URL: server.URL, Token: "secret"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Do(context.Background(), []any{"GET", "k"})
	if err == nil || !strings.Contains(err.Error(), "WRONGTYPE") {
		t.Fatalf("Do() error = %v, want redis error", err)
	}
}

func TestDoSurfacesHTTPFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(
		Config{URL: server.URL, Token: "secret"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Do(context.Background(), []any{"GET", "k"})
	if err == nil || !strings.Contains(err.Error(), "status=401") {
		t.Fatalf("Do() error = %v, want http status error", err)
	}
}

func TestDoRejectsEmptyCommand(t *testing.T) {
	t.Parallel()

	client := MustNew(Config{URL: "https://example.upstash.io", Token: "secret"})
	if _, err := client.Do(context.Background(), nil); err == nil {
		t.Fatal("Do() with empty command should fail")
	}
}
