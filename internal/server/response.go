package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/1broseidon/textviz/internal/logging"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) *Response[T] {
	return &Response[T]{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) *Response[any] {
	return &Response[any]{
		Code:    code,
		Message: message,
	}
}

var validate = validator.New()

// ValidateRequest checks struct tags and reports failures as a 400.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", strings.ToLower(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, "; "))
}

// errorHandler renders every error returned by a handler as a JSON response.
// Only *fiber.Error messages reach the client.
func errorHandler(logger logging.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			logger.Errorf("%s %s: %v", ctx.Method(), ctx.Path(), err)
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
