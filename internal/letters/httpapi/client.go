package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/EiSiMo/agentic-letters-skill/internal/clierr"
	"github.com/EiSiMo/agentic-letters-skill/internal/letters"
	"github.com/EiSiMo/agentic-letters-skill/internal/logger"
)

const userAgent = "agentic-letters-skill/1.0"

var _ letters.Client = (*Client)(nil)

// Client implements letters.Client against the AgenticLetters HTTP API.
type Client struct {
	mx     sync.Mutex
	cfg    Config
	http   *http.Client
	closed bool
}

// ClientOptions contains options for creating a Client.
type ClientOptions struct {
	// HTTPClient overrides the underlying transport, mainly for tests.
	// When nil a client with Config.Timeout is used.
	HTTPClient *http.Client
}

// NewClient creates a new API Client.
func NewClient(cfg Config, options *ClientOptions) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if options != nil && options.HTTPClient != nil {
		httpClient = options.HTTPClient
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		closed: false,
	}
}

// Send uploads the PDF and recipient address as a multipart form and queues
// a letter. One credit is consumed server-side on success.
func (c *Client) Send(ctx context.Context, req letters.SendRequest) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "LettersAPI.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("letters.type", req.Type),
		attribute.String("letters.country", req.Recipient.Country),
		attribute.Int("letters.pdf_bytes", len(req.PDF)),
	)

	body, contentType, err := encodeSendForm(req)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	return c.do(ctx, span, "send", http.MethodPost, "/letters", contentType, body)
}

// Get fetches a single letter by id.
func (c *Client) Get(ctx context.Context, id string) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "LettersAPI.Get", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("letters.id", id))

	return c.do(ctx, span, "get", http.MethodGet, "/letters/"+url.PathEscape(id), "", nil)
}

// List fetches all letters owned by the API key, in server order.
func (c *Client) List(ctx context.Context) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "LettersAPI.List", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	return c.do(ctx, span, "list", http.MethodGet, "/letters", "", nil)
}

// Credits fetches the account's remaining credit balance.
func (c *Client) Credits(ctx context.Context) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "LettersAPI.Credits", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	return c.do(ctx, span, "credits", http.MethodGet, "/credits", "", nil)
}

// Close marks the client closed. Subsequent calls fail.
func (c *Client) Close() error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.http.CloseIdleConnections()
	return nil
}

// do runs one request and classifies every failure as network or server.
// The response body is returned untouched so stdout stays byte-faithful to
// the server.
func (c *Client) do(ctx context.Context, span trace.Span, operation, method, path, contentType string, body io.Reader) (json.RawMessage, error) {
	c.mx.Lock()
	if c.closed {
		c.mx.Unlock()
		err := errors.New("client is closed")
		recordError(span, err)
		return nil, err
	}
	c.mx.Unlock()

	requestID := uuid.NewString()
	log := logger.FromContext(ctx).With("operation", operation, "request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		recordError(span, err)
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log.Debug("calling AgenticLetters API", "method", method, "path", path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		recordRequest(operation, "network_error", time.Since(start).Seconds())
		recordError(span, err)
		return nil, c.classifyTransport(err)
	}
	defer resp.Body.Close()

	recordRequest(operation, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	log.Debug("received API response", "status", resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		recordError(span, err)
		return nil, clierr.Network("Could not read the API response", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := decodeAPIError(resp.StatusCode, raw)
		recordError(span, apiErr)
		return nil, apiErr
	}

	span.SetStatus(codes.Ok, "")
	return raw, nil
}

// classifyTransport maps a transport failure onto the network origin. A
// timeout gets its own message naming the configured deadline.
func (c *Client) classifyTransport(err error) *clierr.Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return clierr.Network(fmt.Sprintf("Request timed out after %s", c.cfg.Timeout), err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return clierr.Network(fmt.Sprintf("Request timed out after %s", c.cfg.Timeout), err)
	}
	return clierr.Network("Could not reach the API", err)
}

// apiErrorBody is the error shape the API returns on rejection.
type apiErrorBody struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Field  string `json:"field"`
}

// decodeAPIError turns a non-2xx response into a server-origin error. A body
// that is not a JSON object still produces a server error, with the HTTP
// status text as detail.
func decodeAPIError(status int, raw []byte) *clierr.Error {
	var body apiErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return clierr.Server(status,
			fmt.Sprintf("HTTP %d with non-JSON response", status),
			"", http.StatusText(status), "")
	}
	message := body.Error
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return clierr.Server(status, message, body.Code, body.Detail, body.Field)
}

// encodeSendForm builds the multipart body: the PDF bytes under "pdf" plus
// one flat field per address attribute. Label is omitted when empty.
func encodeSendForm(req letters.SendRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := req.Filename
	if filename == "" {
		filename = "letter.pdf"
	}
	part, err := w.CreateFormFile("pdf", filename)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to create pdf form part")
	}
	if _, err := part.Write(req.PDF); err != nil {
		return nil, "", errors.Wrap(err, "failed to write pdf bytes")
	}

	fields := map[string]string{
		"name":    req.Recipient.Name,
		"street":  req.Recipient.Street,
		"zip":     req.Recipient.Zip,
		"city":    req.Recipient.City,
		"country": req.Recipient.Country,
		"type":    req.Type,
	}
	if req.Label != "" {
		fields["label"] = req.Label
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", errors.Wrapf(err, "failed to write form field %s", name)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "failed to finalize multipart body")
	}
	return &buf, w.FormDataContentType(), nil
}
