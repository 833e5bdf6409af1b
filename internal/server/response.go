package server

import (
	"net/http"

	"sparkles-laundry/internal/domain"

	"github.com/gin-gonic/gin"
)

// respond writes the uniform success envelope with extra payload keys.
func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// fail converts a classified error into the {success:false, message}
// envelope. Untyped errors become opaque 500s.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Server error"

	switch domain.KindOf(err) {
	case domain.KindValidation:
		status, message = http.StatusBadRequest, err.Error()
	case domain.KindNotFound:
		status, message = http.StatusNotFound, err.Error()
	case domain.KindUnauthorized:
		status, message = http.StatusUnauthorized, err.Error()
	case domain.KindForbidden:
		status, message = http.StatusForbidden, err.Error()
	case domain.KindConflict:
		status, message = http.StatusBadRequest, err.Error()
	case domain.KindRemote:
		status, message = http.StatusBadGateway, err.Error()
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}
