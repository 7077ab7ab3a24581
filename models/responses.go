package models

// PaginationInfo is the pagination block of a list response.
type PaginationInfo struct {
	TotalItems   int64 `json:"total_items"`
	CurrentPage  int   `json:"current_page"`
	ItemsPerPage int   `json:"items_per_page"`
	TotalPages   int64 `json:"total_pages"`
}

// ListResponse is the body of GET /{resource}.
type ListResponse struct {
	Data       []map[string]any `json:"data"`
	Pagination PaginationInfo   `json:"pagination"`
}

// ErrorResponse is the body of every failed request. Messages is only set
// for validation failures.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
