// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/quickly-poll/hoststore"
	"github.com/danielhkuo/quickly-poll/poll"
)

// SetupTestHost opens a fresh host of the given kind. File-backed kinds
// live in a per-test temp dir.
func SetupTestHost(t *testing.T, kind string) poll.Host {
	t.Helper()

	var dsn string
	switch kind {
	case hoststore.KindSQLite:
		dsn = filepath.Join(t.TempDir(), "test.db")
	case hoststore.KindBolt:
		dsn = filepath.Join(t.TempDir(), "test.bolt")
	}

	host, err := hoststore.Open(context.Background(), kind, dsn)
	if err != nil {
		t.Fatalf("Failed to open test host: %v", err)
	}
	t.Cleanup(func() { host.Close() })

	return host
}

// SetupTestContract returns a contract over an empty in-memory host
func SetupTestContract(t *testing.T, policy poll.OverflowPolicy) (*poll.Contract, poll.Host) {
	t.Helper()
	host := SetupTestHost(t, hoststore.KindMemory)
	return poll.NewContract(host, policy), host
}

// SeedTallies writes both counters directly, bypassing the contract
func SeedTallies(t *testing.T, host poll.Host, a, b uint32) {
	t.Helper()

	err := host.Update(context.Background(), func(c poll.Cells) error {
		if err := c.Put(context.Background(), poll.OptionA.String(), a); err != nil {
			return err
		}
		return c.Put(context.Background(), poll.OptionB.String(), b)
	})
	if err != nil {
		t.Fatalf("Failed to seed tallies: %v", err)
	}
}

// MakeRequest creates an HTTP test request. Contract calls carry no body.
func MakeRequest(method, path string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
