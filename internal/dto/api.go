package dto

// AggregateResponse is the GET /api/:isbn success body.
type AggregateResponse struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Year         int     `json:"year"`
	ISBN         string  `json:"isbn"`
	ReviewCount  int64   `json:"review_count"`
	AverageScore float64 `json:"average_score"`
}

// APIError is the structured error body for the JSON API.
type APIError struct {
	Error string `json:"Error"`
}
