package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	applogger "RugGuard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// APIResponse is the JSON envelope every /api route answers with.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ListDataResponse wraps ordered rows with their count.
type ListDataResponse struct {
	Rows  interface{} `json:"rows"`
	Total int64       `json:"total"`
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_ONEOF"`
	Field   string                 `json:"field,omitempty" example:"from_token"`
	Message string                 `json:"message,omitempty" example:"from_token must be one of: ETH, USDC, DAI"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// Messages flattens validation errors into their messages, in order.
func Messages(verr []ValidationError) []string {
	if len(verr) == 0 {
		return nil
	}
	out := make([]string, 0, len(verr))
	for _, e := range verr {
		out = append(out, e.Message)
	}
	return out
}

// AppError is an error that knows its HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError attaches the underlying cause. It is logged, never rendered.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// NotFoundError creates a 404 error.
func NotFoundError(message string) *AppError {
	return &AppError{Code: "ERR_NOT_FOUND", Message: message, Status: http.StatusNotFound}
}

// BadRequestFieldErrorf creates a 400 error bound to a request field.
func BadRequestFieldErrorf(field, format string, a ...interface{}) *AppError {
	return &AppError{
		Code:    "ERR_BAD_REQUEST",
		Field:   field,
		Message: fmt.Sprintf(format, a...),
		Status:  http.StatusBadRequest,
	}
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return &AppError{Code: "ERR_INTERNAL", Message: message, Status: http.StatusInternalServerError}
}

// PathInt parses an integer route parameter. Row ids are client supplied, so
// anything that is not a base-10 integer is a 400.
func PathInt(c echo.Context, name string) (int, error) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, BadRequestFieldErrorf(name, "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// DataResponse writes the envelope with the given status code.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

// ListResponse writes rows with their count.
func ListResponse(c echo.Context, rows interface{}, total int) error {
	return DataResponse(c, http.StatusOK, &ListDataResponse{
		Rows:  rows,
		Total: int64(total),
	})
}

// SuccessResponse writes a 200 envelope.
func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// BadRequestResponse writes a 400 envelope.
func BadRequestResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusBadRequest, data)
}

// AppErrorResponse writes err as an envelope. Errors that are not an
// *AppError become a generic 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return DataResponse(c, appErr.Status, []*AppError{appErr})
	}
	return DataResponse(c, http.StatusInternalServerError, "Something went wrong")
}

// ErrorHandler renders errors that escape handlers, including echo's own
// 404 and 405, as envelopes.
func ErrorHandler(l *applogger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			err = &AppError{
				Code:    fmt.Sprintf("ERR_HTTP_%d", he.Code),
				Message: fmt.Sprint(he.Message),
				Status:  he.Code,
			}
		} else {
			l.Error("unhandled request error",
				applogger.String("path", c.Request().URL.Path),
				applogger.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(statusOf(err))
		} else {
			err = AppErrorResponse(c, err)
		}
		if err != nil {
			l.Error("write error response", applogger.Error(err))
		}
	}
}

func statusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
