package middleware

import (
	"staff-directory/internal/logger"
	"staff-directory/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	log logger.Logger
}

func NewErrorMiddleware(log logger.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{log: log}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if m != nil && m.log != nil {
					m.log.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Path()))
				}
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := err.(*AppError); ok {
			if appErr.StatusCode >= 500 && m != nil && m.log != nil {
				m.log.Error("request failed", zap.String("path", c.Path()), zap.Error(appErr))
			}
			return response.Error(c, appErr.StatusCode, appErr.Message, appErr.Data)
		}

		if m != nil && m.log != nil {
			m.log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}
}
