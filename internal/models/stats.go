package models

// RequestCounts is the by-status breakdown on the admin dashboard. JSON keys
// match what the frontend charts expect.
type RequestCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// Stats bundles the dashboard aggregates.
type Stats struct {
	Requests RequestCounts `json:"requests"`
	Clients  int           `json:"clients"`
	Admins   int           `json:"admins"`
}
