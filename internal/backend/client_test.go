package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProcessTextSendsExactlyThreeFields(t *testing.T) {
	var captured map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/process/text" {
			t.Errorf("path: got %s, want /process/text", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		w.Write([]byte(`{"status":"success","analysis_result":"ok"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	resp, err := client.ProcessText(context.Background(), ProcessingRequest{
		InputSource:    "build a cache",
		InputType:      InputChat,
		EnableIndexing: true,
	})
	if err != nil {
		t.Fatalf("ProcessText failed: %v", err)
	}
	if resp.AnalysisResult != "ok" {
		t.Errorf("analysis: got %q, want %q", resp.AnalysisResult, "ok")
	}

	if len(captured) != 3 {
		t.Errorf("request fields: got %d (%v), want 3", len(captured), captured)
	}
	for _, field := range []string{"input_source", "input_type", "enable_indexing"} {
		if _, ok := captured[field]; !ok {
			t.Errorf("request missing field %q", field)
		}
	}
}

func TestProcessTextEngineErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","error":"boom","traceback":"tb"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).ProcessText(context.Background(), ProcessingRequest{
		InputSource: "x", InputType: InputChat,
	})
	if err != nil {
		t.Fatalf("ProcessText failed: %v", err)
	}
	if !resp.IsError() {
		t.Errorf("IsError: got false, want true")
	}
	if resp.Error != "boom" || resp.Traceback != "tb" {
		t.Errorf("error fields: got %q/%q", resp.Error, resp.Traceback)
	}
}

func TestParseResponseBareString(t *testing.T) {
	resp, err := ParseResponse([]byte(`"just some analysis text"`))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if resp.Status != StatusSuccess {
		t.Errorf("status: got %q, want %q", resp.Status, StatusSuccess)
	}
	if resp.AnalysisResult != "just some analysis text" {
		t.Errorf("analysis: got %q", resp.AnalysisResult)
	}
}

func TestParseResponseObjectWithoutStatus(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"implementation_result":"done"}`))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if resp.Status != StatusSuccess {
		t.Errorf("status: got %q, want %q", resp.Status, StatusSuccess)
	}
}

func TestParseResponseGarbage(t *testing.T) {
	if _, err := ParseResponse([]byte(`<html>not json</html>`)); err == nil {
		t.Error("ParseResponse accepted non-JSON input")
	}
}

func TestNormalizeTransportError(t *testing.T) {
	resp := Normalize(errors.New("connection refused"))
	if !resp.IsError() {
		t.Error("normalized response should report an error")
	}
	if resp.Error != "connection refused" {
		t.Errorf("error text: got %q", resp.Error)
	}
}

func TestHealthFailsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := New(srv.URL).Health(context.Background()); err == nil {
		t.Error("Health passed against a 500 server")
	}
}

func TestGeneratedFilesNilSafety(t *testing.T) {
	var resp *ApiResponse
	if files := resp.GeneratedFiles(); files != nil {
		t.Errorf("nil response files: got %v, want nil", files)
	}

	resp = &ApiResponse{Status: StatusSuccess}
	if files := resp.GeneratedFiles(); files != nil {
		t.Errorf("no-repo files: got %v, want nil", files)
	}
}
