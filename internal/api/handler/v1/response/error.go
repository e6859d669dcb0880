package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the failure form of the envelope. Err and HTTPStatusCode stay
// server side.
type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	OK      bool   `json:"ok" example:"false"`
	Message string `json:"message"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

// RenderErr writes e and aborts the chain. 5xx causes are logged with the
// request id and replaced by a generic message.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	} else {
		zap.L().Debug("request rejected",
			zap.String("request_id", requestid.Get(ctx)),
			zap.Int("status", e.HTTPStatusCode),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, err error, message string) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		Message:        message,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "Invalid credentials")
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "Authentication required")
}

func ErrInvalidToken(err error) *Err {
	return newErr(http.StatusForbidden, err, "Invalid or expired token")
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, "Permission denied")
}

func ErrNotFound(resource, key string, value any) *Err {
	err := fmt.Errorf("%s with %s %v not found", resource, key, value)
	return newErr(http.StatusNotFound, err, err.Error())
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err, err.Error())
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "Internal server error")
}

// ErrForbidden is a 403 whose message is the cause itself.
func ErrForbidden(err error) *Err {
	return newErr(http.StatusForbidden, err, err.Error())
}

func ErrServiceUnavailable(err error) *Err {
	return newErr(http.StatusServiceUnavailable, err, "Service unavailable")
}
