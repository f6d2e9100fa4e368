package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthchat/internal/tools"

	"github.com/gin-gonic/gin"
)

type staticExecutor struct {
	lastName string
	lastArgs string
	result   string
}

func (s *staticExecutor) Execute(_ context.Context, name, arguments string) string {
	s.lastName = name
	s.lastArgs = arguments
	return s.result
}

func newTestRouter(executor Executor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(executor).RegisterRoutes(router)
	return router
}

func doJSONRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestListToolsReturnsFullRegistry(t *testing.T) {
	router := newTestRouter(&staticExecutor{})
	resp := doJSONRequest(t, router, http.MethodGet, "/api/tools", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Tools []tools.ToolSpec `json:"tools"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Tools) != 4 {
		t.Fatalf("expected 4 tools, got %d", len(body.Tools))
	}
	names := make(map[string]bool)
	for _, spec := range body.Tools {
		names[spec.Name] = true
		if spec.Parameters["type"] != "object" {
			t.Fatalf("tool %s parameters should be an object schema: %v", spec.Name, spec.Parameters)
		}
	}
	for _, want := range []string{"query_db", "get_db_schema", "get_patient_data", "compare_dates"} {
		if !names[want] {
			t.Fatalf("missing tool %s in %v", want, names)
		}
	}
}

func TestExecuteToolEnvelope(t *testing.T) {
	executor := &staticExecutor{result: "some rows"}
	router := newTestRouter(executor)

	resp := doJSONRequest(t, router, http.MethodPost, "/api/tools/execute", map[string]any{
		"name":      "query_db",
		"arguments": map[string]string{"query": "SELECT 1"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		Result  string `json:"result"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Result != "some rows" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if executor.lastName != "query_db" {
		t.Fatalf("executor saw wrong tool: %q", executor.lastName)
	}
	if !strings.Contains(executor.lastArgs, "SELECT 1") {
		t.Fatalf("executor saw wrong arguments: %q", executor.lastArgs)
	}
}

func TestExecuteToolMissingNameFailsEnvelope(t *testing.T) {
	router := newTestRouter(&staticExecutor{})
	resp := doJSONRequest(t, router, http.MethodPost, "/api/tools/execute", map[string]any{
		"arguments": map[string]string{},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Success || body.Error == "" {
		t.Fatalf("expected failure envelope, got %+v", body)
	}
}

func TestExecuteToolOmittedArgumentsDefaultToEmptyDocument(t *testing.T) {
	executor := &staticExecutor{result: "schema"}
	router := newTestRouter(executor)
	resp := doJSONRequest(t, router, http.MethodPost, "/api/tools/execute", map[string]any{
		"name": "get_db_schema",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if executor.lastArgs != "{}" {
		t.Fatalf("expected empty argument document, got %q", executor.lastArgs)
	}
}

// The adapter passes through dispatcher results untouched, so an unknown tool
// is a successful envelope carrying error text, exactly as the chat loop
// would feed back to the model.
func TestExecuteToolUnknownToolPassesThrough(t *testing.T) {
	dispatcher := &tools.Dispatcher{}
	router := newTestRouter(dispatcher)
	resp := doJSONRequest(t, router, http.MethodPost, "/api/tools/execute", map[string]any{
		"name":      "nope",
		"arguments": map[string]string{},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Result  string `json:"result"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Result != "Error: Function nope not found." {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}
