package dto

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every catalog API response
type Response[T any] struct {
	Data         T        `json:"data"`
	StatusCode   int      `json:"statusCode"`
	IsSuccessful bool     `json:"isSuccessful"`
	Errors       []string `json:"errors,omitempty"`
}

// NoContent is the payload of responses without data
type NoContent struct{}

func Success[T any](data T, statusCode int) Response[T] {
	return Response[T]{Data: data, StatusCode: statusCode, IsSuccessful: true}
}

func Fail(statusCode int, errors ...string) Response[*NoContent] {
	return Response[*NoContent]{StatusCode: statusCode, Errors: errors}
}

// Write encodes resp with its own status code
func Write[T any](w http.ResponseWriter, resp Response[T]) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewEncoder(w).Encode(resp)
}
