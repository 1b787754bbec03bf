package internal

import (
	"time"

	"github.com/google/uuid"
)

// ProofreadRequest is the envelope of one proofreading run, shared by the
// CLI and the HTTP server.
type ProofreadRequest struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Provider  string    `json:"provider"`
	Timestamp time.Time `json:"timestamp"`
}

// NewProofreadRequest stamps text with a fresh request ID and the current
// time.
func NewProofreadRequest(text, provider string) ProofreadRequest {
	return ProofreadRequest{
		ID:        uuid.New().String(),
		Text:      text,
		Provider:  provider,
		Timestamp: time.Now(),
	}
}
