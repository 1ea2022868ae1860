package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Status(http.StatusOK).
		BodyString("test").
		Write(w)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "test" {
		t.Errorf("Body = %q, want %q", w.Body.String(), "test")
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHTMXResponseBuilder_Header(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Header("Retry-After", "60").
		Write(w)

	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
}

func TestHTMXResponseBuilder_Template(t *testing.T) {
	tmpl := template.Must(template.New("x").Parse(`{{define "hello"}}<p>{{.}}</p>{{end}}{{define "broken"}}{{.Missing.Field}}{{end}}`))

	w := httptest.NewRecorder()
	b := NewHTMXResponse().Template(tmpl, "hello", "<b>hi</b>")
	if b.Err() != nil {
		t.Fatalf("unexpected error: %v", b.Err())
	}
	b.Write(w)
	if w.Body.String() != "<p>&lt;b&gt;hi&lt;/b&gt;</p>" {
		t.Errorf("Body = %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	b = NewHTMXResponse().Template(tmpl, "broken", "string has no fields")
	if b.Err() == nil {
		t.Fatal("expected template error")
	}
	b.Write(w)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to render page") {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		builder *HTMXResponseBuilder
		status  int
	}{
		{"bad request", BadRequestError("Invalid month"), http.StatusBadRequest},
		{"internal", InternalServerError("Invalid month"), http.StatusInternalServerError},
		{"not found", NotFoundError("Invalid month"), http.StatusNotFound},
		{"too many", TooManyRequestsError("Invalid month"), http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)
			if w.Code != tt.status {
				t.Errorf("Status code = %d, want %d", w.Code, tt.status)
			}
			if w.Body.String() != `<div class="error">Invalid month</div>` {
				t.Errorf("Body = %q", w.Body.String())
			}
		})
	}
}

func TestErrorResponse_Escapes(t *testing.T) {
	w := httptest.NewRecorder()
	BadRequestError(`<script>alert(1)</script>`).Write(w)
	if strings.Contains(w.Body.String(), "<script>") {
		t.Errorf("message not escaped: %q", w.Body.String())
	}
}
