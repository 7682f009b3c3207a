package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	upstashx "github.com/mwilhelm/proposalforge/pkg/upstash"
)

const (
	defaultStoreKeyPrefix = "propforge:proposal:"
	defaultStoreTTL       = 24 * time.Hour
)

// Store is the persistence contract the shell uses to keep drafts
// between sessions.
type Store interface {
	Load(ctx context.Context, proposalID string) (*Proposal, error)
	Save(ctx context.Context, p *Proposal) error
	Delete(ctx context.Context, proposalID string) error
}

// StoreOption customizes UpstashRedisStore.
type StoreOption func(*UpstashRedisStore)

func WithKeyPrefix(prefix string) StoreOption {
	return func(s *UpstashRedisStore) {
		trimmed := strings.TrimSpace(prefix)
		if trimmed != "" {
			s.keyPrefix = trimmed
		}
	}
}

func WithTTL(ttl time.Duration) StoreOption {
	return func(s *UpstashRedisStore) {
		s.ttl = ttl
	}
}

// UpstashRedisStore persists proposals in Upstash Redis via REST.
type UpstashRedisStore struct {
	client    *upstashx.Client
	keyPrefix string
	ttl       time.Duration
}

var _ Store = (*UpstashRedisStore)(nil)

func NewUpstashRedisStore(client *upstashx.Client, opts ...StoreOption) (*UpstashRedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("upstash client is required")
	}

	store := &UpstashRedisStore{
		client:    client,
		keyPrefix: defaultStoreKeyPrefix,
		ttl:       defaultStoreTTL,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	if store.ttl < 0 {
		return nil, fmt.Errorf("ttl must be >= 0")
	}

	return store, nil
}

func (s *UpstashRedisStore) Load(ctx context.Context, proposalID string) (*Proposal, error) {
	key, err := s.redisKey(proposalID)
	if err != nil {
		return nil, err
	}

	result, err := s.client.Do(ctx, []any{"GET", key})
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(result)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrProposalNotFound
	}

	var encoded string
	if err := json.Unmarshal(trimmed, &encoded); err != nil {
		return nil, fmt.Errorf("decode proposal payload: %w", err)
	}

	var p Proposal
	if err := json.Unmarshal([]byte(encoded), &p); err != nil {
		return nil, fmt.Errorf("unmarshal proposal: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid proposal loaded from store: %w", err)
	}

	return &p, nil
}

func (s *UpstashRedisStore) Save(ctx context.Context, p *Proposal) error {
	if p == nil {
		return ErrNilProposal
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	} else {
		p.UpdatedAt = p.UpdatedAt.UTC()
	}

	key, err := s.redisKey(p.ProposalID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal proposal: %w", err)
	}

	cmd := []any{"SET", key, string(payload)}
	if s.ttl > 0 {
		cmd = append(cmd, "EX", ttlSeconds(s.ttl))
	}

	if _, err := s.client.Do(ctx, cmd); err != nil {
		return err
	}

	return nil
}

func (s *UpstashRedisStore) Delete(ctx context.Context, proposalID string) error {
	key, err := s.redisKey(proposalID)
	if err != nil {
		return err
	}
	_, err = s.client.Do(ctx, []any{"DEL", key})
	return err
}

func (s *UpstashRedisStore) redisKey(proposalID string) (string, error) {
	if strings.TrimSpace(proposalID) == "" {
		return "", ErrInvalidProposalID
	}
	return s.keyPrefix + proposalID, nil
}

func ttlSeconds(ttl time.Duration) int64 {
	secs := int64(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
