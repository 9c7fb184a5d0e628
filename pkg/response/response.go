package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

// ErrorBody is the envelope of every failed request.
type ErrorBody struct {
	Success   bool                   `json:"success"`
	Error     string                 `json:"error,omitempty"`
	Errores   []validation.Violation `json:"errores,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Success writes {success:true, ...fields}. fields are the top level keys of
// the body, e.g. gin.H{"medicos": list}.
func Success(c *gin.Context, status int, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	if rid := c.GetString("request_id"); rid != "" {
		body["request_id"] = rid
	}
	c.JSON(status, body)
}

func Error(c *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, errorBody(c, message))
}

// Abort is Error for middleware: the handler chain stops here.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody(c, message))
}

// Invalid writes a 400 carrying every violation.
func Invalid(c *gin.Context, verr *validation.Error) {
	body := errorBody(c, "")
	body.Errores = verr.Violations
	c.JSON(http.StatusBadRequest, body)
}

func errorBody(c *gin.Context, message string) ErrorBody {
	return ErrorBody{
		Success:   false,
		Error:     message,
		RequestID: c.GetString("request_id"),
	}
}
