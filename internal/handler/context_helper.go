package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
	"github.com/arabia-tkd/admin-api/pkg/response"
)

// pathID parses a numeric path parameter and writes the validation error
// itself when parsing fails.
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(c, appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, fmt.Sprintf("invalid %s: %q", name, raw)))
		return 0, false
	}
	return id, true
}
