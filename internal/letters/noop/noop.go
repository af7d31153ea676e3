package noop

import (
	"context"
	"encoding/json"

	"github.com/EiSiMo/agentic-letters-skill/internal/letters"
)

var _ letters.Client = (*Client)(nil)

// Client is a no-op letters client for testing. It records the last request
// it saw and answers with canned bodies.
type Client struct {
	SendResponse    json.RawMessage
	GetResponse     json.RawMessage
	ListResponse    json.RawMessage
	CreditsResponse json.RawMessage
	Err             error

	LastSend  *letters.SendRequest
	LastGetID string
	Calls     int

	closed bool
}

// NewClient creates a new no-op Client.
func NewClient() *Client {
	return &Client{
		closed: false,
	}
}

// Send records the request and returns the canned body.
func (n *Client) Send(ctx context.Context, req letters.SendRequest) (json.RawMessage, error) {
	n.Calls++
	n.LastSend = &req
	return n.SendResponse, n.Err
}

// Get records the id and returns the canned body.
func (n *Client) Get(ctx context.Context, id string) (json.RawMessage, error) {
	n.Calls++
	n.LastGetID = id
	return n.GetResponse, n.Err
}

// List returns the canned body.
func (n *Client) List(ctx context.Context) (json.RawMessage, error) {
	n.Calls++
	return n.ListResponse, n.Err
}

// Credits returns the canned body.
func (n *Client) Credits(ctx context.Context) (json.RawMessage, error) {
	n.Calls++
	return n.CreditsResponse, n.Err
}

// Close is a no-op.
func (n *Client) Close() error {
	n.closed = true
	return nil
}
