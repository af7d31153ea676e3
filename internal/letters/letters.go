// Package letters defines the AgenticLetters domain types and the client
// interface the CLI talks through. Implementations live in subpackages:
// httpapi for the real API, noop for tests.
package letters

import (
	"context"
	"encoding/json"
	"io"
)

// Client talks to the AgenticLetters API. Every method returns the raw
// response body so callers can print it without reshaping; the server owns
// the response schema.
type Client interface {
	// Send uploads a PDF plus recipient address and queues a letter.
	Send(ctx context.Context, req SendRequest) (json.RawMessage, error)

	// Get fetches a single letter by id.
	Get(ctx context.Context, id string) (json.RawMessage, error)

	// List fetches all letters owned by the API key.
	List(ctx context.Context) (json.RawMessage, error)

	// Credits fetches the account's remaining credit balance.
	Credits(ctx context.Context) (json.RawMessage, error)

	io.Closer
}

// Recipient is a German postal address.
type Recipient struct {
	Name    string `json:"name"`
	Street  string `json:"street"`  // street + house number
	Zip     string `json:"zip"`     // 5-digit PLZ
	City    string `json:"city"`
	Country string `json:"country"` // ISO code, "DE" unless told otherwise
}

// SendRequest carries everything needed to queue one letter.
type SendRequest struct {
	PDF       []byte // raw file bytes, content validation is server-side
	Filename  string // original filename for the multipart part, optional
	Recipient Recipient
	Type      string // server-validated against an evolving allow-list
	Label     string // free text for the sender's own reference, optional
}

// Letter statuses, in lifecycle order. The server moves a letter forward
// through these and never backward.
const (
	StatusQueued   = "queued"
	StatusPrinted  = "printed"
	StatusSent     = "sent"
	StatusReturned = "returned"
)

// Letter mirrors the server-side entity. The CLI prints raw bodies, so this
// type exists for tests and for anyone embedding the client as a library.
type Letter struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	Label     string    `json:"label,omitempty"`
	CreatedAt string    `json:"created_at"`
	Recipient Recipient `json:"recipient"`
}

// Account holds the read-only credit balance.
type Account struct {
	CreditsRemaining int `json:"credits_remaining"`
}
