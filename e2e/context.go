// Package e2e runs Gherkin scenarios against a running esgtrack server.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext carries the HTTP client and the last response of a scenario.
type TestContext struct {
	BaseURL     string
	HTTPClient  *http.Client
	accessToken string

	LastResponse     *http.Response
	LastResponseBody []byte

	saved map[string]string
}

// NewTestContext builds a context for one scenario. token may be empty, in
// which case authenticated scenarios are filtered out by the runner.
func NewTestContext(baseURL, token string) *TestContext {
	return &TestContext{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		accessToken: token,
		saved:       make(map[string]string),
	}
}

func (tc *TestContext) AccessToken() string {
	return tc.accessToken
}

func (tc *TestContext) POST(path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	return tc.do(http.MethodPost, path, reader, headers)
}

// POSTRaw sends body verbatim, for scenarios that post malformed JSON.
func (tc *TestContext) POSTRaw(path, body string, headers map[string]string) error {
	return tc.do(http.MethodPost, path, strings.NewReader(body), headers)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) DELETE(path string, headers map[string]string) error {
	return tc.do(http.MethodDelete, path, nil, headers)
}

func (tc *TestContext) do(method, path string, body io.Reader, headers map[string]string) error {
	req, err := http.NewRequest(method, tc.BaseURL+tc.Expand(path), body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) StatusCode() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}

func (tc *TestContext) ResponseBody() []byte {
	return tc.LastResponseBody
}

// ResponseField resolves a dotted path such as "entry.performance" in the
// last JSON response.
func (tc *TestContext) ResponseField(path string) (any, error) {
	var current any
	if err := json.Unmarshal(tc.LastResponseBody, &current); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", path, part)
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response", path)
		}
	}
	return current, nil
}

// Save remembers a value for later {name} substitution in paths.
func (tc *TestContext) Save(name, value string) {
	tc.saved[name] = value
}

// Expand replaces {name} placeholders with saved values.
func (tc *TestContext) Expand(s string) string {
	for k, v := range tc.saved {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
