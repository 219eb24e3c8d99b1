package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/reviewhub/pkg/logger"
)

// Response is the unified API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Machine-readable error codes carried in the error envelope.
const (
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeTokenInvalid     = "TOKEN_INVALID"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeConflict         = "CONFLICT"
	CodePersistence      = "PERSISTENCE_ERROR"
)

// AppError represents a structured application error with HTTP status and error code.
type AppError struct {
	HTTPStatus int    // HTTP status code (e.g. 400, 404, 500)
	Code       string // Machine-readable error code
	Message    string // Human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

// Pre-defined error constructors

func NewUnauthenticated(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Code: CodeUnauthenticated, Message: msg}
}

func NewTokenExpired(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Code: CodeTokenExpired, Message: msg}
}

func NewTokenInvalid(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Code: CodeTokenInvalid, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Code: CodeForbidden, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Code: CodeNotFound, Message: msg}
}

func NewInvalidInput(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Code: CodeInvalidInput, Message: msg}
}

func NewInvalidStatus(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Code: CodeInvalidStatus, Message: msg}
}

func NewInvalidOperation(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Code: CodeInvalidOperation, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Code: CodeConflict, Message: msg}
}

func NewPersistence(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Code: CodePersistence, Message: msg}
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// Message sends a 200 OK response with a message and no data.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: msg,
	})
}

// Error sends an error response. If err is an *AppError, its code and status
// are used; otherwise the error is logged and a generic 500 is returned so
// store-level details never leak outside debug mode.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{
			Success: false,
			Message: appErr.Message,
			Code:    appErr.Code,
		})
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")

	msg := "internal server error"
	if gin.IsDebugging() {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Message: msg,
		Code:    CodePersistence,
	})
}

// BadRequest sends a 400 with the INVALID_INPUT code. Used by handlers for
// binding failures where the validator message carries the field-level detail.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: msg,
		Code:    CodeInvalidInput,
	})
}
