package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EiSiMo/agentic-letters-skill/internal/clierr"
	"github.com/EiSiMo/agentic-letters-skill/internal/letters"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		APIKey:  "sk_test",
	}, nil)
}

func sampleSendRequest() letters.SendRequest {
	return letters.SendRequest{
		PDF:      []byte("%PDF-1.4 fake"),
		Filename: "kuendigung.pdf",
		Recipient: letters.Recipient{
			Name:    "Erika Mustermann",
			Street:  "Musterstr. 12",
			Zip:     "10115",
			City:    "Berlin",
			Country: "DE",
		},
		Type:  "standard",
		Label: "gym cancellation",
	}
}

func TestSend_Success(t *testing.T) {
	responseBody := `{"id":"ltr_1","status":"queued","type":"standard","label":"gym cancellation","created_at":"2026-08-29T10:00:00Z","credits_remaining":4}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/letters", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "agentic-letters-skill/1.0", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Erika Mustermann", r.FormValue("name"))
		assert.Equal(t, "Musterstr. 12", r.FormValue("street"))
		assert.Equal(t, "10115", r.FormValue("zip"))
		assert.Equal(t, "Berlin", r.FormValue("city"))
		assert.Equal(t, "DE", r.FormValue("country"))
		assert.Equal(t, "standard", r.FormValue("type"))
		assert.Equal(t, "gym cancellation", r.FormValue("label"))

		file, header, err := r.FormFile("pdf")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "kuendigung.pdf", header.Filename)
		pdfBytes, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 fake"), pdfBytes)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(responseBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	raw, err := c.Send(context.Background(), sampleSendRequest())

	require.NoError(t, err)
	// Byte-faithful pass-through: the CLI's stdout must match the server.
	assert.Equal(t, responseBody, string(raw))
}

func TestSend_OmitsEmptyLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, labelPresent := r.MultipartForm.Value["label"]
		assert.False(t, labelPresent)
		_, _ = w.Write([]byte(`{"id":"ltr_2"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	req := sampleSendRequest()
	req.Label = ""
	_, err := c.Send(context.Background(), req)

	require.NoError(t, err)
}

func TestGet_StatusPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/letters/ltr_42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"ltr_42","status":"printed"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	raw, err := c.Get(context.Background(), "ltr_42")

	require.NoError(t, err)
	var letter letters.Letter
	require.NoError(t, json.Unmarshal(raw, &letter))
	assert.Equal(t, letters.StatusPrinted, letter.Status)
}

func TestList_ArrayPassThrough(t *testing.T) {
	responseBody := `[{"id":"ltr_2"},{"id":"ltr_1"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/letters", r.URL.Path)
		_, _ = w.Write([]byte(responseBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	raw, err := c.List(context.Background())

	require.NoError(t, err)
	// Server order preserved, no client-side re-sorting.
	assert.Equal(t, responseBody, string(raw))
}

func TestCredits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/credits", r.URL.Path)
		_, _ = w.Write([]byte(`{"credits_remaining":7}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	raw, err := c.Credits(context.Background())

	require.NoError(t, err)
	var account letters.Account
	require.NoError(t, json.Unmarshal(raw, &account))
	assert.Equal(t, 7, account.CreditsRemaining)
}

func TestServerError_FullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Validation failed","code":"invalid_zip","detail":"zip must be 5 digits","field":"recipient.zip"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	_, err := c.Get(context.Background(), "ltr_1")

	require.Error(t, err)
	tagged := clierr.From(err)
	assert.Equal(t, clierr.OriginServer, tagged.Origin)
	assert.Equal(t, "Validation failed", tagged.Message)
	assert.Equal(t, "invalid_zip", tagged.Code)
	assert.Equal(t, 400, tagged.HTTPStatus)
	assert.Equal(t, "zip must be 5 digits", tagged.Detail)
	assert.Equal(t, "recipient.zip", tagged.Field)
}

func TestServerError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream exploded</html>"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	_, err := c.List(context.Background())

	require.Error(t, err)
	tagged := clierr.From(err)
	assert.Equal(t, clierr.OriginServer, tagged.Origin)
	assert.Equal(t, "HTTP 502 with non-JSON response", tagged.Message)
	assert.Equal(t, 502, tagged.HTTPStatus)
	assert.Equal(t, "Bad Gateway", tagged.Detail)
}

func TestServerError_BodyWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"code":"insufficient_credits"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	defer c.Close()

	_, err := c.Send(context.Background(), sampleSendRequest())

	require.Error(t, err)
	tagged := clierr.From(err)
	assert.Equal(t, "HTTP 402", tagged.Message)
	assert.Equal(t, "insufficient_credits", tagged.Code)
}

func TestNetworkError_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close() // nothing listens here anymore

	c := newTestClient(baseURL)
	defer c.Close()

	_, err := c.Credits(context.Background())

	require.Error(t, err)
	tagged := clierr.From(err)
	assert.Equal(t, clierr.OriginNetwork, tagged.Origin)
	assert.Equal(t, "Could not reach the API", tagged.Message)
	assert.NotEmpty(t, tagged.Detail)
}

func TestNetworkError_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Config{
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
		APIKey:  "sk_test",
	}, nil)
	defer c.Close()

	_, err := c.List(context.Background())

	require.Error(t, err)
	tagged := clierr.From(err)
	assert.Equal(t, clierr.OriginNetwork, tagged.Origin)
	assert.Contains(t, tagged.Message, "Request timed out after")
}

func TestClient_WhenClosed(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")
	require.NoError(t, c.Close())

	_, err := c.List(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestClient_CloseTwice(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
