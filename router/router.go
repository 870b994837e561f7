// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-poll/handlers"
	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/poll"
)

func NewRouter(contract *poll.Contract) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	contractHandler := handlers.NewContractHandler(contract)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Contract entry points (public, no auth)
	mux.HandleFunc("POST /contract/{fn}", middleware.WithLogging(contractHandler.Invoke))
	mux.HandleFunc("GET /contract/get_results", middleware.WithLogging(contractHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-poll API v1"))
	})

	return mux
}
