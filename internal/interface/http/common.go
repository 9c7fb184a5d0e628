package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/internal/application"
	"github.com/oksasatya/go-clinic-api/pkg/response"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

// base carries what every resource handler needs to render failures.
type base struct {
	Logger *logrus.Logger
	entity string
}

// handleError is the single translation point from service errors to HTTP.
func (b base) handleError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.Invalid(c, verr)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, b.entity+" not found")
	case errors.Is(err, application.ErrConflict):
		response.Error(c, http.StatusConflict, b.entity+" still has appointments")
	default:
		if b.Logger != nil {
			b.Logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error")
	}
}

// pathID parses the :id path parameter. On failure the 400 is already written.
func (b base) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Invalid(c, validation.Fail("id", "gt", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into dst. On failure the 400 is already written.
func (b base) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Invalid(c, validation.FromBindError(err))
		return false
	}
	return true
}

// flexInt accepts 3 as well as "3"; HTML selects post ids as strings.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: typeOfInt64}
		}
		*f = flexInt(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

func (f *flexInt) int64Ptr() *int64 {
	if f == nil {
		return nil
	}
	n := int64(*f)
	return &n
}
