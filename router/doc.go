// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(contract)

Wrap the result in middleware.CORS when a browser front end calls it.

# Endpoints

Health:

	GET /health

Contract (public, no auth):

	POST /contract/{fn}         - Invoke vote_a, vote_b or get_results
	GET  /contract/get_results  - Read tallies

Contract routes are wrapped with middleware.WithLogging.
*/
package router
