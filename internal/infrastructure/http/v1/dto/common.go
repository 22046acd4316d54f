// Package dto defines request and response shapes for the HTTP API.
package dto

// ListQuery is the shared pagination query.
type ListQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// StatusResponse is a minimal acknowledgement body.
type StatusResponse struct {
	Status string `json:"status"`
}

// Ok is the standard acknowledgement.
var Ok = StatusResponse{Status: "ok"}
