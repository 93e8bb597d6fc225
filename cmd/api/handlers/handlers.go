package handlers

import (
	"github.com/gin-gonic/gin"

	"fotofeed/cmd/api/dto"
	"fotofeed/cmd/api/services"
)

// abortWithError writes err as {"error": kind, "message": text}.
func abortWithError(c *gin.Context, err error) {
	typed := services.AsError(err)
	c.AbortWithStatusJSON(typed.HTTPStatus(), dto.ErrorResponseDTO{
		Error:   string(typed.Kind),
		Message: typed.Message,
	})
}
