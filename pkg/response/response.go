package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError is one entry of a 400 validation response body.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// JSON writes the resource itself as the response body.
func JSON(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// ValidationErrors writes 400 {"errors":[{msg,param},...]}.
func ValidationErrors(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// Msg writes {"msg": "..."} with the given status. Domain not-found outcomes
// use 400 rather than 404.
func Msg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// ServerError collapses unexpected failures to a plain-text 500 with no
// internal detail.
func ServerError(c *gin.Context) {
	c.String(http.StatusInternalServerError, "Server Error")
}
