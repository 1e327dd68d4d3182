package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khoahotran/rentredi/pkg/client"
)

// Form is the create/edit form as submitted by the browser.
type Form struct {
	Name    string `form:"name"`
	ZipCode string `form:"zipCode"`
}

// Payload trims both fields and reports false when either ends up empty.
// Invalid forms must not reach the API.
func (f Form) Payload() (client.UserPayload, bool) {
	p := client.UserPayload{
		Name:    strings.TrimSpace(f.Name),
		ZipCode: strings.TrimSpace(f.ZipCode),
	}
	return p, p.Name != "" && p.ZipCode != ""
}

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

const (
	ToastInfo  = "info"
	ToastError = "error"

	// ToastDurationMillis is how long a notification stays on screen.
	ToastDurationMillis = 2800

	DeleteDialogTitle = "Delete user"
	EmptyTableMessage = "No users yet. Create your first one above."
)

type Toast struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

var (
	successMessages = map[Action]string{
		ActionCreate: "User created",
		ActionUpdate: "User updated",
		ActionDelete: "User deleted",
	}
	failureMessages = map[Action]string{
		ActionCreate: "Create failed",
		ActionUpdate: "Update failed",
		ActionDelete: "Delete failed",
	}
)

// ToastFor builds the notification shown after an action finished with err.
func ToastFor(action Action, err error) Toast {
	if err == nil {
		return Toast{Message: successMessages[action], Kind: ToastInfo}
	}
	msg := err.Error()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	if msg == "" {
		msg = failureMessages[action]
	}
	return Toast{Message: msg, Kind: ToastError}
}

func DeleteDescription(name string) string {
	return fmt.Sprintf(`Are you sure you want to delete "%s"? This action cannot be undone.`, name)
}

func LoadErrorMessage(err error) string {
	return "Failed to load users: " + err.Error()
}
