package httpserver

// StatsResponse is the envelope for every stats API reply. Data is the
// domain payload; an empty payload with Success true means "no data right
// now", matching the best-effort service contract.
type StatsResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
