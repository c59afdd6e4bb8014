package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-tab/services"
	"github.com/yeremiapane/restaurant-tab/utils"
)

// respondServiceError maps the service error taxonomy to HTTP. Anything that
// is not a services.Error is an internal failure and gets logged.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		utils.RespondError(c, svcErr.HTTPStatus(), svcErr)
		return
	}

	utils.ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
}

func currentUser(c *gin.Context) (uint, string) {
	return c.GetUint("userID"), c.GetString("role")
}
