// Package httpx holds the JSON request plumbing shared by the REST adapters.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError is returned when the server answers with an unexpected status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// Request describes one JSON call.
type Request struct {
	Method  string
	URL     string
	Payload any
	Header  http.Header
	// Expect lists accepted status codes; empty means 200 only.
	Expect []int
}

// NewJSONRequest encodes payload (if any) and builds the request.
func NewJSONRequest(ctx context.Context, r Request) (*http.Request, error) {
	var body io.Reader
	if r.Payload != nil {
		raw, err := json.Marshal(r.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	for k, values := range r.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if r.Payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// DoJSON sends the request and decodes the response body into v (when not nil).
func DoJSON(ctx context.Context, client *http.Client, r Request, v any) error {
	req, err := NewJSONRequest(ctx, r)
	if err != nil {
		return err
	}
	return Do(client, req, r.Expect, v)
}

// Do executes a prepared request and decodes a JSON answer into v.
func Do(client *http.Client, req *http.Request, expect []int, v any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if !accepted(resp.StatusCode, expect) {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		return &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   strings.TrimSpace(string(payload)),
		}
	}

	if v == nil {
		if err := resp.Body.Close(); err != nil {
			return fmt.Errorf("close response body: %w", err)
		}
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}

func accepted(code int, expect []int) bool {
	if len(expect) == 0 {
		return code == http.StatusOK
	}
	for _, c := range expect {
		if c == code {
			return true
		}
	}
	return false
}
