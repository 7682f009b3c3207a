package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	upstashx "github.com/mwilhelm/proposalforge/pkg/upstash"
)

func newStoreForServer(t *testing.T, server *httptest.Server, opts ...StoreOption) *UpstashRedisStore {
	t.Helper()

	client, err := upstashx.NewClient(
		upstashx.Config{URL: server.URL, Token: "token"},
		upstashx.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	store, err := NewUpstashRedisStore(client, opts...)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}
	return store
}

func TestUpstashRedisStoreSaveSetsPrefixedKeyWithTTL(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	store := newStoreForServer(t, server)

	proposal := NewProposal("prop-1", "Acme", time.Now())
	proposal.SetSection("technical_solution", "## Approach")
	if err := store.Save(context.Background(), proposal); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if len(gotCommand) != 5 {
		t.Fatalf("command = %#v, want SET key payload EX ttl", gotCommand)
	}
	if gotCommand[0] != "SET" {
		t.Fatalf("command[0] = %v, want SET", gotCommand[0])
	}
	if gotCommand[1] != "propforge:proposal:prop-1" {
		t.Fatalf("command[1] = %v", gotCommand[1])
	}
	if gotCommand[3] != "EX" {
		t.Fatalf("command[3] = %v, want EX", gotCommand[3])
	}

	payload, _ := gotCommand[2].(string)
	var saved Proposal
	if err := json.Unmarshal([]byte(payload), &saved); err != nil {
		t.Fatalf("unmarshal saved payload: %v", err)
	}
	if saved.ProposalID != "prop-1" || saved.Sections["technical_solution"] != "## Approach" {
		t.Fatalf("saved payload = %+v", saved)
	}
}

func TestUpstashRedisStoreSaveWithoutTTL(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	store := newStoreForServer(t, server, WithTTL(0))

	if err := store.Save(context.Background(), NewProposal("prop-2", "", time.Now())); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(gotCommand) != 3 {
		t.Fatalf("command = %#v, want plain SET", gotCommand)
	}
}

func TestUpstashRedisStoreLoadRoundTrip(t *testing.T) {
	t.Parallel()

	seed := NewProposal("prop-3", "Acme", time.Now())
	seed.ClientText = "A growing software company."
	payload, err := json.Marshal(seed)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	encoded, err := json.Marshal(string(payload))
	if err != nil {
		t.Fatalf("marshal encoded seed: %v", err)
	}

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprintf(w, `{"result":%s}`, encoded)
	}))
	t.Cleanup(server.Close)

	store := newStoreForServer(t, server)

	got, err := store.Load(context.Background(), "prop-3")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.ProposalID != "prop-3" || got.ClientText != seed.ClientText {
		t.Fatalf("Load() = %+v", got)
	}
	if gotCommand[0] != "GET" || gotCommand[1] != "propforge:proposal:prop-3" {
		t.Fatalf("command = %#v", gotCommand)
	}
}

func TestUpstashRedisStoreLoadMissingKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":null}`)
	}))
	t.Cleanup(server.Close)

	store := newStoreForServer(t, server)

	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, ErrProposalNotFound) {
		t.Fatalf("Load() error = %v, want ErrProposalNotFound", err)
	}
}

func TestUpstashRedisStoreDeleteUsesPrefixedKey(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprint(w, `{"result":1}`)
	}))
	t.Cleanup(server.Close)

	store := newStoreForServer(t, server, WithKeyPrefix("custom:"))

	if err := store.Delete(context.Background(), "prop-4"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if gotCommand[0] != "DEL" || gotCommand[1] != "custom:prop-4" {
		t.Fatalf("command = %#v", gotCommand)
	}
}

func TestUpstashRedisStoreRejectsEmptyProposalID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for an empty id")
	}))
	t.Cleanup(server.Close)

	store := newStoreForServer(t, server)

	if _, err := store.Load(context.Background(), "  "); !errors.Is(err, ErrInvalidProposalID) {
		t.Fatalf("Load() error = %v, want ErrInvalidProposalID", err)
	}
	if err := store.Save(context.Background(), &Proposal{}); !errors.Is(err, ErrInvalidProposalID) {
		t.Fatalf("Save() error = %v, want ErrInvalidProposalID", err)
	}
	if err := store.Delete(context.Background(), ""); !errors.Is(err, ErrInvalidProposalID) {
		t.Fatalf("Delete() error = %v, want ErrInvalidProposalID", err)
	}
}

func TestProposalSections(t *testing.T) {
	t.Parallel()

	p := NewProposal("prop-5", "Acme", time.Now())
	p.SetSection("timeline", "Phase 1")
	p.SetSection("timeline", "Phase 1 and 2")

	got, ok := p.Section("timeline")
	if !ok || got != "Phase 1 and 2" {
		t.Fatalf("Section() = %q, %v", got, ok)
	}
	if _, ok := p.Section("pricing_table"); ok {
		t.Fatal("Section() returned a value for a missing section")
	}
}
