package http

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// User DTOs
type CreateUserRequest struct {
	Name    string    `json:"name"`
	ZipCode zipString `json:"zipCode"`
}

// UpdateUserRequest fields left empty or omitted keep their stored value.
type UpdateUserRequest struct {
	Name    string    `json:"name"`
	ZipCode zipString `json:"zipCode"`
}

// zipString accepts a zip code sent as a JSON string or number, e.g. 10001.
type zipString string

func (z *zipString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*z = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*z = zipString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("zipCode must be a string or a number: %w", err)
	}
	*z = zipString(n.String())
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Stack string `json:"stack,omitempty"`
}

const (
	msgUserNotFound  = "User not found"
	msgRouteNotFound = "Route not found"
	msgUserDeleted   = "User deleted successfully"
	msgWelcome       = "Welcome to the RentRedi API!"
)
