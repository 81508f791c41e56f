package view

import (
	"errors"
	"net/http"

	"example.com/taskdesk/internal/api"
)

// Banner texts.
const (
	MsgTimeout        = "Request timed out - server might be down"
	MsgSessionExpired = "Session expired. Please login again."
	MsgTaskNotFound   = "Task not found"
	MsgListNotFound   = "List not found"
	MsgInvalidRequest = "Invalid request data"
	MsgReorderFailed  = "Failed to save task order"
	MsgUpdateFailed   = "Failed to update task"
)

// banner turns a client error into the line shown above the view.
func banner(err error, notFound, fallback string) string {
	switch {
	case errors.Is(err, api.ErrTimeout):
		return MsgTimeout
	case errors.Is(err, api.ErrUnauthorized):
		return MsgSessionExpired
	}
	switch api.StatusOf(err) {
	case http.StatusNotFound:
		return notFound
	case http.StatusBadRequest:
		return MsgInvalidRequest
	}
	if msg := api.MessageOf(err); msg != "" {
		return msg
	}
	return fallback
}
