package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brokerdesk/brokerdesk/internal/db/controller"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/assignment"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/permission"
	"github.com/brokerdesk/brokerdesk/internal/db/controller/role"
)

// Kind classifies an error for HTTP status codes and user-facing texts.
type Kind string

// Error kinds.
const (
	KindNone       Kind = ""
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
	KindNoTenant   Kind = "no_tenant"
	KindUnknown    Kind = "unknown"
)

var (
	// ErrPermissionDenied is returned when the caller lacks a required permission.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidInput is returned for malformed input such as bad ids or bodies.
	ErrInvalidInput = errors.New("invalid input")
)

var kinds = []struct { //nolint:gochecknoglobals
	err  error
	kind Kind
}{
	{controller.ErrNoTenant, KindNoTenant},
	{role.ErrRoleNotFound, KindNotFound},
	{assignment.ErrAssignmentNotFound, KindNotFound},
	{role.ErrSystemRole, KindForbidden},
	{ErrPermissionDenied, KindForbidden},
	{role.ErrRoleNameTaken, KindConflict},
	{assignment.ErrAlreadyAssigned, KindConflict},
	{role.ErrRoleNameEmpty, KindValidation},
	{role.ErrInvalidRole, KindValidation},
	{permission.ErrInvalidPermission, KindValidation},
	{assignment.ErrUserIDEmpty, KindValidation},
	{ErrInvalidInput, KindValidation},
}

// KindOf returns the kind of err; KindNone for nil and KindUnknown for anything unclassified.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindUnknown
}

// Status maps a kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case KindNone:
		return fiber.StatusOK
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation, KindNoTenant:
		return fiber.StatusBadRequest
	case KindForbidden:
		return fiber.StatusForbidden
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  Kind   `json:"kind"`
}

// SendError writes err as an ErrorResponse. Unknown errors are not echoed to the client.
func SendError(c *fiber.Ctx, err error) error {
	k := KindOf(err)

	text := err.Error()
	if k == KindUnknown {
		text = "internal server error"
	}

	return c.Status(Status(k)).JSON(ErrorResponse{Error: text, Kind: k})
}
