// Package bridge implements the native boundary between the terminal UI
// and the local DeepCode sidecar. Processing operations travel as
// JSON-RPC 2.0 lines over the sidecar's stdio; configuration and file
// operations are served locally, the way the desktop shell did.
package bridge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
)

// jsonRPCRequest is a JSON-RPC 2.0 request written to the sidecar's stdin.
type jsonRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// jsonRPCResponse is a JSON-RPC 2.0 response read from the sidecar's stdout.
type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *jsonRPCError) Error() string {
	return fmt.Sprintf("bridge error %d: %s", e.Code, e.Message)
}

// Sidecar is a JSON-RPC client over a line-oriented stdio transport.
// Calls are strictly sequential: one request is written, one response is
// read. The UI never issues overlapping bridge calls, so no response
// demultiplexing is needed.
type Sidecar struct {
	mu      sync.Mutex
	nextID  atomic.Int64
	writer  io.Writer
	scanner *bufio.Scanner
	cmd     *exec.Cmd
}

// NewSidecar wraps an existing reader/writer pair. Used directly in tests
// and by Spawn for real subprocesses.
func NewSidecar(r io.Reader, w io.Writer) *Sidecar {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 50*1024*1024)
	return &Sidecar{writer: w, scanner: scanner}
}

// Spawn starts the sidecar process and connects to its stdio.
func Spawn(command string, args ...string) (*Sidecar, error) {
	cmd := exec.Command(command, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("sidecar stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("sidecar stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting sidecar: %w", err)
	}

	s := NewSidecar(stdout, stdin)
	s.cmd = cmd
	return s, nil
}

// Close terminates the sidecar process, if one was spawned.
func (s *Sidecar) Close() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil {
		return err
	}
	_ = s.cmd.Wait()
	return nil
}

// call performs one request/response round trip. result may be nil for
// operations whose result the caller ignores.
func (s *Sidecar) call(method string, params, result any) error {
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      s.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshalling %s request: %w", method, err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.writer.Write(data); err != nil {
		return fmt.Errorf("writing %s request: %w", method, err)
	}

	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp jsonRPCResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			return fmt.Errorf("parsing %s response: %w", method, err)
		}
		if resp.ID != req.ID {
			// Stale frame from an earlier aborted call; skip it.
			continue
		}
		if resp.Error != nil {
			return resp.Error
		}
		if result != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("decoding %s result: %w", method, err)
			}
		}
		return nil
	}

	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("reading %s response: %w", method, err)
	}
	return fmt.Errorf("%s: sidecar closed the connection", method)
}
