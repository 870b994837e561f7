// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Poll API.

# Handler Types

ContractHandler exposes the poll contract's entry points over HTTP. It is
created from a *poll.Contract:

	contractHandler := handlers.NewContractHandler(contract)

# Entry Points

	POST /contract/vote_a      → one vote for option A
	POST /contract/vote_b      → one vote for option B
	POST /contract/get_results → current tallies
	GET  /contract/get_results → current tallies

Votes take no body and return the invocation ID. Any caller may vote any
number of times.

Every response carries an X-Invocation-ID header (UUID v4) that also
appears in the server logs.

# Status Codes

  - 200: invocation committed (or results read)
  - 404: unknown function name
  - 409: the option's counter is at its maximum and the overflow policy is fail
  - 503: the request was cancelled before the host committed
  - 500: the host store failed; nothing was written
*/
package handlers
