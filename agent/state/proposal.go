// Package state persists proposal drafts between sessions: the client
// brief, the extracted document text, the classification snapshot, and
// every generated section keyed by name.
package state

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrNilProposal       = errors.New("proposal is nil")
	ErrInvalidProposalID = errors.New("proposal id is empty")
)

type Proposal struct {
	ProposalID     string            `json:"proposal_id"`
	ClientName     string            `json:"client_name,omitempty"`
	ClientText     string            `json:"client_text,omitempty"`
	ExtractedText  string            `json:"extracted_text,omitempty"`
	Classification string            `json:"classification,omitempty"`
	Sections       map[string]string `json:"sections,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewProposal(proposalID, clientName string, now time.Time) *Proposal {
	return &Proposal{
		ProposalID: proposalID,
		ClientName: clientName,
		Sections:   make(map[string]string, 4),
		UpdatedAt:  now.UTC(),
	}
}

func (p *Proposal) Touch(now time.Time) {
	p.UpdatedAt = now.UTC()
}

// SetSection stores generated content under a section name
// (technical_solution, timeline, pricing_table, ...), replacing any
// previous revision.
func (p *Proposal) SetSection(name, content string) {
	if p.Sections == nil {
		p.Sections = make(map[string]string, 4)
	}
	p.Sections[name] = content
}

func (p *Proposal) Section(name string) (string, bool) {
	if p == nil || p.Sections == nil {
		return "", false
	}
	content, ok := p.Sections[name]
	return content, ok
}

func (p *Proposal) Validate() error {
	if p == nil {
		return ErrNilProposal
	}
	if strings.TrimSpace(p.ProposalID) == "" {
		return ErrInvalidProposalID
	}
	return nil
}
