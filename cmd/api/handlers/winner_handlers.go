package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fotofeed/models"
)

type WinnerGetter interface {
	Current(ctx context.Context) (*models.DailyWinner, error)
}

// GetDailyWinnerHandler handles GET /winner.
func GetDailyWinnerHandler(svc WinnerGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := svc.Current(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, w)
	}
}
