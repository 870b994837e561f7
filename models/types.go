package models

// Response types

type InvokeResponse struct {
	InvocationID string `json:"invocation_id"`
	Function     string `json:"function"`
}

// Tallies plus the derived figures a front end displays
type ResultsResponse struct {
	InvocationID string `json:"invocation_id"`
	TallyA       uint32 `json:"tally_a"`
	TallyB       uint32 `json:"tally_b"`
	Total        uint64 `json:"total"`
	PercentA     int    `json:"percent_a"`
	PercentB     int    `json:"percent_b"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
