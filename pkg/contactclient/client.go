// Package contactclient submits contact-form entries to the contact API and
// reads back the inbox.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/folio/backend/pkg/contactform"
)

// User-facing messages for failed submissions.
const (
	MsgFallback  = "Failed to send message"
	MsgTransport = "There was an error sending your message. Please try again."
)

const defaultTimeout = 10 * time.Second

// maxResponseBytes bounds how much of a response body is decoded.
const maxResponseBytes = 1 << 20

// Kind classifies the result of a submission.
type Kind int

const (
	Succeeded Kind = iota
	ValidationFailed
	RemoteRejected
	TransportError
)

func (k Kind) String() string {
	switch k {
	case Succeeded:
		return "succeeded"
	case ValidationFailed:
		return "validation_failed"
	case RemoteRejected:
		return "remote_rejected"
	case TransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of Client.Submit. FieldErrors is set only for
// ValidationFailed; ID only for Succeeded.
type Outcome struct {
	Kind        Kind
	Message     string
	ID          string
	FieldErrors contactform.Errors
	// Err is the underlying cause of a TransportError.
	Err error
}

// Contact is a stored submission as returned by the inbox listing.
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// Health is the decoded GET /api/health response.
type Health struct {
	OK        bool
	Message   string
	Timestamp string
}

// APIError is returned by the inbox calls when the server answers with a
// non-2xx status or success:false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contact api: %d %s", e.StatusCode, e.Message)
}

// ErrNotFound is matched by errors.Is for a 404 APIError.
var ErrNotFound = errors.New("contact not found")

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the contact API rooted at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	now        func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithClock overrides the source of submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New returns a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("contactclient: invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("contactclient: base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// apiResponse mirrors the server's JSON envelope.
type apiResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	ID        string            `json:"id,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Contacts  []Contact         `json:"contacts,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`
}

type submitPayload struct {
	contactform.Fields
	Timestamp string `json:"timestamp"`
}

// Submit validates f locally and, when valid, posts it once. It never
// retries and never returns an error; the Outcome carries the result.
func (c *Client) Submit(ctx context.Context, f contactform.Fields) Outcome {
	if errs := contactform.Validate(f); errs != nil {
		return Outcome{Kind: ValidationFailed, Message: errs.First(), FieldErrors: errs}
	}

	body, err := json.Marshal(submitPayload{
		Fields:    f,
		Timestamp: c.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return Outcome{Kind: TransportError, Message: MsgTransport, Err: err}
	}

	status, resp, err := c.do(ctx, http.MethodPost, "/api/contact", bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: TransportError, Message: MsgTransport, Err: err}
	}
	if status < 200 || status > 299 || !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = MsgFallback
		}
		o := Outcome{Kind: RemoteRejected, Message: msg}
		if len(resp.Errors) > 0 {
			o.FieldErrors = contactform.Errors(resp.Errors)
		}
		return o
	}
	return Outcome{Kind: Succeeded, Message: resp.Message, ID: resp.ID}
}

// List returns every stored submission in insertion order.
func (c *Client) List(ctx context.Context) ([]Contact, error) {
	status, resp, err := c.do(ctx, http.MethodGet, "/api/contacts", nil)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(status, resp); err != nil {
		return nil, err
	}
	if resp.Contacts == nil {
		return []Contact{}, nil
	}
	return resp.Contacts, nil
}

// Delete removes the submission with the given id. A missing id yields an
// error matching ErrNotFound.
func (c *Client) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("contactclient: empty id")
	}
	status, resp, err := c.do(ctx, http.MethodDelete, "/api/contacts/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkResponse(status, resp)
}

// Health reports the server's liveness. A 503 answer is returned as a
// Health with OK false, not as an error.
func (c *Client) Health(ctx context.Context) (Health, error) {
	status, resp, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return Health{}, err
	}
	if status != http.StatusOK && status != http.StatusServiceUnavailable {
		return Health{}, &APIError{StatusCode: status, Message: resp.Message}
	}
	return Health{OK: status == http.StatusOK && resp.Success, Message: resp.Message, Timestamp: resp.Timestamp}, nil
}

func checkResponse(status int, resp apiResponse) error {
	if status < 200 || status > 299 || !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{StatusCode: status, Message: msg}
	}
	return nil
}

// do sends one request and decodes the JSON envelope. Errors are transport
// or decoding failures only; HTTP error statuses are returned to the caller.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (int, apiResponse, error) {
	var out apiResponse
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, out, fmt.Errorf("contactclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, out, fmt.Errorf("contactclient: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseBytes)).Decode(&out); err != nil {
		return res.StatusCode, out, fmt.Errorf("contactclient: decode %s %s response: %w", method, path, err)
	}
	return res.StatusCode, out, nil
}
