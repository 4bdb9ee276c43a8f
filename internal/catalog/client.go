package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studiowebux/printcat/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries a per-call id so client and server logs line up
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 10 << 20
)

// Client talks to the catalog service over HTTP+JSON.
type Client struct {
	// BaseURL is the service root, e.g. "http://localhost:8000"
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	Products   *ProductService
	Tags       *NameService
	Materials  *NameService
	Categories *CategoryService
}

// NewClient creates a catalog client for baseURL.
// A non-positive timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
	c.Products = &ProductService{client: c}
	c.Tags = &NameService{client: c, kind: "tag", collection: "/tags"}
	c.Materials = &NameService{client: c, kind: "material", collection: "/materials"}
	c.Categories = &CategoryService{client: c}
	return c
}

// Repositories returns the client as the repository set the UI consumes.
func (c *Client) Repositories() Repositories {
	return Repositories{
		Products:   c.Products,
		Tags:       c.Tags,
		Materials:  c.Materials,
		Categories: c.Categories,
	}
}

// errorBody covers FastAPI style {"detail": ...} and plain {"message": ...}.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func (b errorBody) text() string {
	if len(b.Detail) > 0 {
		var s string
		if err := json.Unmarshal(b.Detail, &s); err == nil {
			return s
		}
		return string(b.Detail)
	}
	return b.Message
}

// do performs one request. body is JSON-encoded when non-nil; out is
// decoded from the response when non-nil and the body is not empty.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Type: ErrTypeUnknown, Op: op, Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return &Error{Type: ErrTypeUnknown, Op: op, Message: "failed to build request", Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		cerr := classifyTransportError(op, err)
		logging.Warn("catalog request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.String("type", cerr.Type.String()),
			zap.Error(err),
		)
		return cerr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Type: ErrTypeNetwork, Op: op, Message: "failed to read response", Err: err}
	}

	logging.Debug("catalog request",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		cerr := newHTTPError(op, resp.StatusCode, eb.text())
		logging.Warn("catalog request rejected",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", cerr.Message),
		)
		return cerr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return newParseError(op, err)
	}
	return nil
}

func idPath(collection string, id int) string {
	return fmt.Sprintf("%s/%d", collection, id)
}
