// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-poll/hoststore"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/poll"
	"github.com/danielhkuo/quickly-poll/testutil"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	contract, _ := testutil.SetupTestContract(t, poll.OverflowFail)
	return NewRouter(contract)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	expected := "quickly-poll API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestMux(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"POST", "/contract/vote_a"},
		{"POST", "/contract/vote_b"},
		{"POST", "/contract/get_results"},
		{"GET", "/contract/get_results"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Route %s %s returned %d, expected 200", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},            // Only GET is defined
		{"GET", "/contract/vote_a"},    // Votes change state, POST only
		{"DELETE", "/contract/vote_b"}, // No delete exists
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownPath(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/polls", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUnknownFunction(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("POST", "/contract/withdraw", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

// TestFullVotingWorkflow drives the contract through the router on a
// durable SQLite host:
// 1. Fresh poll reads (0, 0)
// 2. vote_a, vote_a, vote_b
// 3. Results read (2, 1) through both GET and POST
func TestFullVotingWorkflow(t *testing.T) {
	host := testutil.SetupTestHost(t, hoststore.KindSQLite)
	mux := NewRouter(poll.NewContract(host, poll.OverflowFail))

	results := func(method string) models.ResultsResponse {
		req := httptest.NewRequest(method, "/contract/get_results", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ResultsResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	// Step 1
	if r := results("GET"); r.TallyA != 0 || r.TallyB != 0 {
		t.Fatalf("Step 1 - expected (0, 0), got (%d, %d)", r.TallyA, r.TallyB)
	}

	// Step 2
	for _, fn := range []string{"vote_a", "vote_a", "vote_b"} {
		req := httptest.NewRequest("POST", "/contract/"+fn, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Step 2 - %s failed: %d - %s", fn, w.Code, w.Body.String())
		}
		if w.Header().Get("X-Invocation-ID") == "" {
			t.Errorf("Step 2 - %s missing X-Invocation-ID", fn)
		}
	}

	// Step 3
	for _, method := range []string{"GET", "POST"} {
		r := results(method)
		if r.TallyA != 2 || r.TallyB != 1 || r.Total != 3 {
			t.Errorf("Step 3 (%s) - expected (2, 1) total 3, got (%d, %d) total %d",
				method, r.TallyA, r.TallyB, r.Total)
		}
	}
}
