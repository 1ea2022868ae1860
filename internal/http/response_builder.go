// Package http provides HTTP server and handler implementations.
//
// This file implements the Builder Pattern for constructing HTML and HTMX
// responses. Bodies are rendered into a buffer first so a template failure
// can still turn into a clean 500.

package http

import (
	"bytes"
	"html/template"
	"net/http"
)

// HTMXResponseBuilder provides a fluent API for building HTML responses.
type HTMXResponseBuilder struct {
	statusCode int
	body       []byte
	headers    map[string]string
	err        error
}

// NewHTMXResponse creates a new response builder with default 200 status.
func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		statusCode: http.StatusOK,
		headers:    map[string]string{"Content-Type": "text/html; charset=utf-8"},
	}
}

// Status sets the HTTP status code for the response.
func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *HTMXResponseBuilder) Header(name, value string) *HTMXResponseBuilder {
	b.headers[name] = value
	return b
}

// BodyString sets the response body verbatim.
func (b *HTMXResponseBuilder) BodyString(content string) *HTMXResponseBuilder {
	b.body = []byte(content)
	return b
}

// Template renders the named template into the body. A render failure is
// kept and reported by Err; Write then emits a 500 instead.
func (b *HTMXResponseBuilder) Template(t *template.Template, name string, data any) *HTMXResponseBuilder {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		b.err = err
		return b
	}
	b.body = buf.Bytes()
	return b
}

// Err returns the template error captured by Template, if any.
func (b *HTMXResponseBuilder) Err() error {
	return b.err
}

// Write sends the built response to the http.ResponseWriter.
func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) {
	if b.err != nil {
		InternalServerError("Failed to render page").Write(w)
		return
	}
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// ErrorResponse creates a standard error fragment. The message is
// HTML-escaped.
func ErrorResponse(statusCode int, message string) *HTMXResponseBuilder {
	return NewHTMXResponse().
		Status(statusCode).
		BodyString(`<div class="error">` + template.HTMLEscapeString(message) + `</div>`)
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

// NotFoundError creates a 404 Not Found error response.
func NotFoundError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

// TooManyRequestsError creates a 429 response.
func TooManyRequestsError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusTooManyRequests, message)
}
