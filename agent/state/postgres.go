package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// PostgresConfig carries the connection settings for the durable
// proposal archive.
type PostgresConfig struct {
	DSN string `envconfig:"DSN" required:"true"`
}

type proposalRow struct {
	bun.BaseModel `bun:"table:proposals,alias:p"`

	ProposalID string    `bun:"proposal_id,pk"`
	Payload    []byte    `bun:"payload,type:jsonb,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}

// PostgresStore archives proposals in Postgres. Redis keeps the hot
// working copy with a TTL; this store is the one that survives it.
type PostgresStore struct {
	db *bun.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &PostgresStore{db: db}, nil
}

// EnsureSchema creates the proposals table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*proposalRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create proposals table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, proposalID string) (*Proposal, error) {
	if strings.TrimSpace(proposalID) == "" {
		return nil, ErrInvalidProposalID
	}

	var row proposalRow
	err := s.db.NewSelect().
		Model(&row).
		Where("proposal_id = ?", proposalID).
		Scan(ctx)
	if err != nil {
		return nil, scanError(proposalID, err)
	}

	var p Proposal
	if err := json.Unmarshal(row.Payload, &p); err != nil {
		return nil, fmt.Errorf("unmarshal proposal %s: %w", proposalID, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid proposal loaded from store: %w", err)
	}

	return &p, nil
}

func (s *PostgresStore) Save(ctx context.Context, p *Proposal) error {
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

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal proposal: %w", err)
	}

	row := proposalRow{
		ProposalID: p.ProposalID,
		Payload:    payload,
		UpdatedAt:  p.UpdatedAt,
	}

	_, err = s.db.NewInsert().
		Model(&row).
		On("CONFLICT (proposal_id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert proposal %s: %w", p.ProposalID, err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, proposalID string) error {
	if strings.TrimSpace(proposalID) == "" {
		return ErrInvalidProposalID
	}

	_, err := s.db.NewDelete().
		Model((*proposalRow)(nil)).
		Where("proposal_id = ?", proposalID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete proposal %s: %w", proposalID, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// scanError maps a select failure onto the store contract: a missing
// row is ErrProposalNotFound, anything else keeps its cause.
func scanError(proposalID string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProposalNotFound
	}
	return fmt.Errorf("select proposal %s: %w", proposalID, err)
}
