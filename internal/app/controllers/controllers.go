package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
)

// requireQuery fetches a mandatory query parameter, writing a 400 response
// when it is missing.
func requireQuery(ctx *gin.Context, name string) (string, bool) {
	value := ctx.Query(name)
	if value == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Missing required query parameter").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return value, true
}
