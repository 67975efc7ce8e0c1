package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todod/pkg/todo"
)

func newTestServer() *Server {
	return New(todo.NewMemStore())
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeTodo(t *testing.T, rec *httptest.ResponseRecorder) todo.Todo {
	t.Helper()
	var td todo.Todo
	if err := json.Unmarshal(rec.Body.Bytes(), &td); err != nil {
		t.Fatalf("decode todo: %v (body %q)", err, rec.Body.String())
	}
	return td
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []todo.Todo {
	t.Helper()
	var todos []todo.Todo
	if err := json.Unmarshal(rec.Body.Bytes(), &todos); err != nil {
		t.Fatalf("decode list: %v (body %q)", err, rec.Body.String())
	}
	return todos
}

func TestCreateReturns201(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, "POST", "/api/todos", `{"title":"Buy milk"}`)
	if rec.Code != 201 {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeTodo(t, rec)
	if created.ID != 1 || created.Title != "Buy milk" || created.Completed {
		t.Fatalf("unexpected record: %+v", created)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("createdAt missing")
	}
}

func TestCreateRejectsMissingTitle(t *testing.T) {
	s := newTestServer()
	for _, body := range []string{`{}`, `{"title":""}`, `{"title":"   "}`} {
		rec := doJSON(t, s, "POST", "/api/todos", body)
		if rec.Code != 400 {
			t.Fatalf("body %s: want 400, got %d", body, rec.Code)
		}
		var e map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil || e["error"] == "" {
			t.Fatalf("body %s: want error payload, got %q", body, rec.Body.String())
		}
	}
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, "POST", "/api/todos", `{"title":`)
	if rec.Code != 400 {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestUnknownIDReturns404(t *testing.T) {
	s := newTestServer()
	cases := []struct{ method, path, body string }{
		{"GET", "/api/todos/42", ""},
		{"PUT", "/api/todos/42", `{"title":"x"}`},
		{"PATCH", "/api/todos/42/toggle", ""},
		{"DELETE", "/api/todos/42", ""},
	}
	for _, c := range cases {
		rec := doJSON(t, s, c.method, c.path, c.body)
		if rec.Code != 404 {
			t.Fatalf("%s %s: want 404, got %d", c.method, c.path, rec.Code)
		}
	}
}

func TestNonNumericIDReturns404(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, "DELETE", "/api/todos/abc", "")
	if rec.Code != 404 {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestUpdateWithOmittedTitleKeepsRecord(t *testing.T) {
	s := newTestServer()
	doJSON(t, s, "POST", "/api/todos", `{"title":"keep me"}`)

	rec := doJSON(t, s, "PUT", "/api/todos/1", `{}`)
	if rec.Code != 200 {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if got := decodeTodo(t, rec); got.Title != "keep me" {
		t.Fatalf("omitted title must not clear the record, got %q", got.Title)
	}
}

func TestDeleteReturnsConfirmation(t *testing.T) {
	s := newTestServer()
	doJSON(t, s, "POST", "/api/todos", `{"title":"doomed"}`)

	rec := doJSON(t, s, "DELETE", "/api/todos/1", "")
	if rec.Code != 200 {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["deleted"] != true {
		t.Fatalf("want deleted confirmation, got %v", body)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, "GET", "/health", "")
	if rec.Code != 200 {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Fatalf("want status ok, got %q", body["status"])
	}
}

func TestStatusCounts(t *testing.T) {
	s := newTestServer()
	doJSON(t, s, "POST", "/api/todos", `{"title":"a"}`)
	doJSON(t, s, "POST", "/api/todos", `{"title":"b"}`)
	doJSON(t, s, "PATCH", "/api/todos/1/toggle", "")

	rec := doJSON(t, s, "GET", "/api/status", "")
	if rec.Code != 200 {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var body map[string]int
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["todos"] != 2 || body["completed"] != 1 || body["pending"] != 1 {
		t.Fatalf("unexpected counts: %v", body)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, "GET", "/health", "")
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing X-Request-Id header")
	}
}

func TestPreflight(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, "OPTIONS", "/api/todos", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS headers")
	}
}

func TestFullScenario(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, "POST", "/api/todos", `{"title":"Buy milk"}`)
	if rec.Code != 201 {
		t.Fatalf("create: want 201, got %d", rec.Code)
	}
	milk := decodeTodo(t, rec)
	if milk.ID != 1 || milk.Completed {
		t.Fatalf("create: %+v", milk)
	}

	rec = doJSON(t, s, "POST", "/api/todos", `{"title":"Walk dog"}`)
	dog := decodeTodo(t, rec)
	if dog.ID != 2 {
		t.Fatalf("second create: %+v", dog)
	}

	rec = doJSON(t, s, "PATCH", "/api/todos/1/toggle", "")
	if got := decodeTodo(t, rec); !got.Completed {
		t.Fatalf("toggle: %+v", got)
	}

	todos := decodeList(t, doJSON(t, s, "GET", "/api/todos", ""))
	if len(todos) != 2 || !todos[0].Completed || todos[1].Completed {
		t.Fatalf("list: %+v", todos)
	}

	rec = doJSON(t, s, "DELETE", "/api/todos/2", "")
	if rec.Code != 200 {
		t.Fatalf("delete: want 200, got %d", rec.Code)
	}

	todos = decodeList(t, doJSON(t, s, "GET", "/api/todos", ""))
	if len(todos) != 1 || todos[0].ID != 1 {
		t.Fatalf("list after delete: %+v", todos)
	}

	rec = doJSON(t, s, "PUT", "/api/todos/1", `{"title":"Buy oat milk"}`)
	updated := decodeTodo(t, rec)
	if updated.Title != "Buy oat milk" || !updated.Completed {
		t.Fatalf("update: %+v", updated)
	}
}
