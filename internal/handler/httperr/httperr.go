package httperr

import (
	"net/http"

	"nest/internal/domain/delivery"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/queries"
	"nest/internal/worker"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError keeps err on the gin context for the request log while the
// client only sees msg and detail.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	target error
	status int
	msg    string
	// expose the error text as detail
	detail bool
}

// First match wins: specific sentinels precede the broad validation mark.
var mappings = []mapping{
	{target: worker.ErrQueueFull, status: http.StatusServiceUnavailable, msg: "Queue is full, retry later"},
	{target: queries.ErrUserNotFound, status: http.StatusNotFound, msg: "User not found"},
	{target: queries.ErrDeliveryNotFound, status: http.StatusNotFound, msg: "Delivery not found"},
	{target: errs.ErrNotFound, status: http.StatusNotFound, msg: "Not found"},
	{target: delivery.ErrNotReplayable, status: http.StatusConflict, msg: "Delivery cannot be replayed", detail: true},
	{target: queries.ErrInvalidCursor, status: http.StatusBadRequest, msg: "Invalid cursor"},
	{target: queries.ErrInvalidEmail, status: http.StatusBadRequest, msg: "Invalid email"},
	{target: queries.ErrUnknownProduct, status: http.StatusBadRequest, msg: "Unknown product", detail: true},
	{target: errs.ErrValidation, status: http.StatusBadRequest, msg: "Invalid request", detail: true},
}

// Abort maps a usecase error to its HTTP status. Unmapped errors are 500s
// and never leak their text.
func Abort(c *gin.Context, err error) {
	for _, m := range mappings {
		if !errs.Is(err, m.target) {
			continue
		}
		var detail any
		if m.detail {
			detail = err.Error()
		}
		AbortWithError(c, m.status, err, m.msg, detail)
		return
	}
	AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
}

// StatusOf reports the status Abort would use.
func StatusOf(err error) int {
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
