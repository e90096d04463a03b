package models

import "time"

// VideosResponse is the success envelope of the aggregation endpoint
type VideosResponse struct {
	Success    bool          `json:"success"`
	Channel    Channel       `json:"channel"`
	Videos     []VideoRecord `json:"videos"`
	TotalCount int           `json:"totalCount"`
	UsedAPI    bool          `json:"usedApi"`
	FetchedAt  time.Time     `json:"fetchedAt"`
}

// ErrorResponse is the failure envelope of the aggregation endpoint
type ErrorResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Videos  []VideoRecord `json:"videos"`
}

// NewErrorResponse returns a failure envelope with an empty, non-null video list.
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   msg,
		Videos:  []VideoRecord{},
	}
}
