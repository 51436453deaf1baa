package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultBaseURL is where the local engine listens unless overridden.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to the DeepCode engine over HTTP.
//
// Processing calls deliberately carry no timeout: the engine can run for
// many minutes on a large document, and the UI stays responsive while the
// call is in flight. Only the health probe is bounded.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// BaseURL returns the engine address this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks that the engine is reachable and answering.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("engine health check failed: %s", resp.Status)
	}
	return nil
}

// ProcessText submits a chat or URL task and waits for the final response.
func (c *Client) ProcessText(ctx context.Context, req ProcessingRequest) (*ApiResponse, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process/text", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("process request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading process response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("engine error: %s (%s)", resp.Status, string(body))
	}

	return ParseResponse(body)
}

// ProcessFileUpload submits a file through the legacy multipart endpoint.
// The preferred path for file input is the native bridge; this variant
// exists for engines running without the desktop sidecar.
func (c *Client) ProcessFileUpload(ctx context.Context, path string, enableIndexing bool) (*ApiResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening upload file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("buffering upload file: %w", err)
	}
	if err := w.WriteField("enable_indexing", strconv.FormatBool(enableIndexing)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process/file", &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("file upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upload response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("engine error: %s (%s)", resp.Status, string(body))
	}

	return ParseResponse(body)
}

// ParseResponse decodes an engine response body. The engine usually sends
// an ApiResponse object, but some code paths return a bare JSON string;
// those are treated as successful analysis text.
func ParseResponse(body []byte) (*ApiResponse, error) {
	var resp ApiResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		if resp.Status == "" {
			resp.Status = StatusSuccess
		}
		return &resp, nil
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		return &ApiResponse{Status: StatusSuccess, AnalysisResult: text}, nil
	}

	return nil, fmt.Errorf("undecodable engine response: %q", truncate(string(body), 120))
}

// Normalize converts a transport or bridge failure into the same error
// shape an engine-reported failure has, so every failure renders through
// one code path.
func Normalize(err error) *ApiResponse {
	return &ApiResponse{Status: StatusError, Error: err.Error()}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
