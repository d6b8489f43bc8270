package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	model2 "github.com/korafinance/kora/api/model"
	"github.com/korafinance/kora/internal/apierror"
)

// respondError maps a service failure onto the response envelope. Internal
// failures are logged and answered with a generic message so store details
// never leak to clients.
func respondError(c *gin.Context, err error) {
	status := apierror.MapErrorToHTTPStatus(err)
	if apiErr, ok := err.(apierror.APIError); ok && status != http.StatusInternalServerError {
		c.JSON(status, model2.APIResponse{Message: apiErr.Message})
		return
	}
	logrus.Error(err)
	c.JSON(http.StatusInternalServerError, model2.APIResponse{Message: "Server error"})
}
