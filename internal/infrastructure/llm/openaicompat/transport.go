package openaicompat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"screen-agent/internal/application/port/output"
)

// extraBodyTransport adds server-specific sampling fields the client library
// has no field for to every JSON request body.
type extraBodyTransport struct {
	base   http.RoundTripper
	fields map[string]any
}

func (t *extraBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body == nil || req.Method != http.MethodPost || len(t.fields) == 0 {
		return t.base.RoundTrip(req)
	}

	bodyBytes, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}

	var body map[string]any
	if err := json.Unmarshal(bodyBytes, &body); err == nil {
		for k, v := range t.fields {
			if _, set := body[k]; !set {
				body[k] = v
			}
		}
		if patched, err := json.Marshal(body); err == nil {
			bodyBytes = patched
		}
	}

	clone := req.Clone(req.Context())
	clone.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	clone.ContentLength = int64(len(bodyBytes))
	return t.base.RoundTrip(clone)
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"bytes", req.ContentLength,
	)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Warn("HTTP Request failed", "error", err)
		return nil, err
	}

	t.logger.Debug("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
	)
	return resp, nil
}
