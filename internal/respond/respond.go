// Package respond writes the response envelope every endpoint uses:
// {"success": true, "message": ..., "data": ..., "meta": ...} on success and
// {"success": false, "error": ...} on failure.
package respond

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
)

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": data})
}

func Paginated(c *gin.Context, message string, data any, meta dtos.PageMeta) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data, "meta": meta})
}

// Error is the single boundary handler for failures. Internal errors are
// logged; their detail only leaks into the body outside production.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	body := gin.H{"success": false, "error": publicMessage(err)}
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	if !production() {
		body["detail"] = err.Error()
	}
	c.JSON(status, body)
}

func publicMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Code != apperr.CodeInternal {
		return appErr.Message
	}
	return "something went wrong"
}

func production() bool {
	return os.Getenv("APP_ENV") == "production"
}
