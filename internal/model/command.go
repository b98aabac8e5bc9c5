package model

import (
	"encoding/json"
	"net/http"
)

type ListCommandsRequest struct{}

type ListCommandsResponse = json.RawMessage

type CreateCommandRequest struct {
	Name     string `json:"name"`
	Response string `json:"response"`
}

// CreateCommandResponse forwards the upstream body verbatim and renders with
// a 201 status.
type CreateCommandResponse json.RawMessage

func (r CreateCommandResponse) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}

	return r, nil
}

func (CreateCommandResponse) StatusCode() int {
	return http.StatusCreated
}

type UpdateCommandRequest struct {
	CommandID string `uri:"commandId"`
	Name      string `json:"name"`
	Response  string `json:"response"`
}

type UpdateCommandResponse = json.RawMessage

type DeleteCommandRequest struct {
	CommandID string `uri:"commandId"`
}

type DeleteCommandResponse struct{}

func (DeleteCommandResponse) StatusCode() int {
	return http.StatusNoContent
}
