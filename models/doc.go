// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON bodies of the HTTP API.

# Responses

	InvokeResponse   → POST /contract/vote_a, POST /contract/vote_b
	ResultsResponse  → GET /contract/get_results, POST /contract/get_results
	ErrorResponse    → any non-2xx status

# Results

ResultsResponse carries the raw tallies and the figures derived from them:

	{
	  "invocation_id": "5f0c...",
	  "tally_a": 2,
	  "tally_b": 1,
	  "total": 3,
	  "percent_a": 67,
	  "percent_b": 33
	}

Percentages are whole numbers; an empty poll reports 50/50.

# Errors

	{"error": "Conflict", "message": "OptionA has reached its maximum count"}

The error field is the HTTP status text; message is optional detail.
*/
package models
