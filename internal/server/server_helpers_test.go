package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	return doRawRequest(t, ts, method, path, body, payload != nil)
}

func doRawRequest(t *testing.T, ts *httptest.Server, method, path string, body io.Reader, isJSON bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, data)
	}
}

func assertError(t *testing.T, resp *http.Response, want string) {
	t.Helper()
	body := decodeBody(t, resp)
	if got, _ := body["error"].(string); got != want {
		t.Fatalf("expected error %q, got %#v", want, body["error"])
	}
}

func promptFromBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body := decodeBody(t, resp)
	prompt, ok := body["prompt"].(map[string]any)
	if !ok {
		t.Fatalf("expected prompt object, got %#v", body)
	}
	return prompt
}

func tagQuery(names ...string) string {
	values := url.Values{}
	for _, name := range names {
		values.Add("tag", name)
	}
	return values.Encode()
}

func stringList(t *testing.T, value any) []string {
	t.Helper()
	if value == nil {
		return nil
	}
	raw, ok := value.([]any)
	if !ok {
		t.Fatalf("expected list, got %T", value)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			t.Fatalf("expected string item, got %T", item)
		}
		out = append(out, s)
	}
	return out
}

func manyStrings(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + strings.Repeat("x", i%5) + string(rune('a'+i%26))
	}
	return out
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
