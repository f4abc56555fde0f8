// Package common holds the response envelopes and request helpers shared by
// every HTTP handler.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/user"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SuccessResponseJSON writes a Response envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ProblemDetailsJSON writes an application/problem+json response.
// Optional args: a string overrides the detail, an int overrides the status.
// Without an override the status is derived from err.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := ErrorToStatusCode(err)
	detail := ""
	if err != nil && status < fiber.StatusInternalServerError {
		detail = err.Error()
	}
	for _, a := range args {
		switch v := a.(type) {
		case string:
			detail = v
		case int:
			status = v
		}
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	var de *domain.Error
	if errors.As(err, &de) && status < fiber.StatusInternalServerError {
		pd.Errors = errorFields(de)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		pd.Errors = fields
	}
	return c.Status(status).JSON(pd, "application/problem+json")
}

func errorFields(de *domain.Error) map[string]any {
	fields := map[string]any{}
	if de.Field != "" {
		fields["field"] = de.Field
	}
	if de.Resource != "" {
		fields["resource"] = de.Resource
	}
	if de.State != "" {
		fields["state"] = de.State
	}
	if de.StatusCode != 0 {
		fields["providerStatus"] = de.StatusCode
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	if err == nil {
		return fiber.StatusInternalServerError
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest
	}
	if errors.Is(err, user.ErrUserUnauthorized) {
		return fiber.StatusUnauthorized
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		return fiber.StatusConflict
	}
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindUnauthorized:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInvalidState, domain.KindDuplicate:
		return fiber.StatusConflict
	case domain.KindProviderRequest:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

// ParseUUID reads a uuid path parameter, writing a 400 when it is malformed.
func ParseUUID(c *fiber.Ctx, param string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, false, ProblemDetailsJSON(c, "Invalid "+param, err, param+" must be a valid UUID", fiber.StatusBadRequest)
	}
	return id, true, nil
}
