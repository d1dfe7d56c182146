// Package backend is the typed client of the document storage API the gateway
// sits in front of. It never retries: every failure is returned to the caller.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"rhdocs/internal/model"
)

const documentsPath = "/api/pieces-justificatives"

// Credentials are relayed on every outbound call. All fields are optional.
type Credentials struct {
	Authorization string
	Cookie        string
	CSRFToken     string
	RequestID     string
}

// CSRFHeader is the header carrying Credentials.CSRFToken.
const CSRFHeader = "X-XSRF-TOKEN"

// Query selects the documents to list.
type Query struct {
	// OwnerID restricts the listing to one collaborator; 0 lists every owner.
	OwnerID int64
	// Status, when set, keeps only documents whose effective status matches.
	Status model.Status
}

// Client talks to the backend API rooted at BaseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each call. Zero keeps the HTTP client default (no timeout).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient returns a Client whose transport is traced with OpenTelemetry.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root URL without trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// DocumentsURL returns the URL of the documents collection, or of one document
// when id is non-empty.
func (c *Client) DocumentsURL(id string) string {
	if id == "" {
		return c.baseURL + documentsPath
	}
	return c.baseURL + documentsPath + "/" + id
}

// Response is a fully read backend response.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Forward sends body to url and reads the whole response. Non-2xx statuses are
// not errors here; callers decide how to relay them.
func (c *Client) Forward(ctx context.Context, method, url, contentType string, body io.Reader, creds Credentials) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	applyCredentials(req, creds)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        b,
	}, nil
}

func applyCredentials(req *http.Request, creds Credentials) {
	if creds.Authorization != "" {
		req.Header.Set("Authorization", creds.Authorization)
	}
	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}
	if creds.CSRFToken != "" {
		req.Header.Set(CSRFHeader, creds.CSRFToken)
	}
	if creds.RequestID != "" {
		req.Header.Set("X-Request-ID", creds.RequestID)
	}
}

// List returns the documents selected by q in backend order. It never returns a
// nil slice on success.
func (c *Client) List(ctx context.Context, q Query, creds Credentials) ([]model.Document, error) {
	url := c.DocumentsURL("")
	if q.OwnerID > 0 {
		url = c.DocumentsURL("collaborateur/" + strconv.FormatInt(q.OwnerID, 10))
	}

	var docs []model.Document
	if err := c.doJSON(ctx, http.MethodGet, url, nil, creds, &docs); err != nil {
		return nil, err
	}

	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if q.Status != "" && d.EffectiveStatus() != q.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Get returns one document.
func (c *Client) Get(ctx context.Context, id int64, creds Credentials) (*model.Document, error) {
	var d model.Document
	if err := c.doJSON(ctx, http.MethodGet, c.DocumentsURL(strconv.FormatInt(id, 10)), nil, creds, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateStatus changes the workflow status of a document and returns it.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status model.Status, creds Credentials) (*model.Document, error) {
	body, err := json.Marshal(map[string]model.Status{"statut": status})
	if err != nil {
		return nil, err
	}
	var d model.Document
	url := c.DocumentsURL(strconv.FormatInt(id, 10) + "/statut")
	if err := c.doJSON(ctx, http.MethodPatch, url, body, creds, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, id int64, creds Credentials) error {
	return c.doJSON(ctx, http.MethodDelete, c.DocumentsURL(strconv.FormatInt(id, 10)), nil, creds, nil)
}

func (c *Client) doJSON(ctx context.Context, method, url string, body []byte, creds Credentials, out any) error {
	var r io.Reader
	ct := ""
	if body != nil {
		r = bytes.NewReader(body)
		ct = "application/json"
	}
	resp, err := c.Forward(ctx, method, url, ct, r, creds)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return NewError(resp.Status, resp.Body)
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return nil
}
