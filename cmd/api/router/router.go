package router

import (
	"github.com/gin-gonic/gin"

	"fotofeed/cmd/api/auth"
	"fotofeed/cmd/api/handlers"
	"fotofeed/cmd/api/middleware"
)

// Deps holds what the routes need.
type Deps struct {
	Tokens   auth.TokenParser
	Comments handlers.CommentSubmitter
	Winner   handlers.WinnerGetter
	Ping     handlers.Pinger
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	r.GET("/health", handlers.HealthHandler(d.Ping))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/comments", auth.IdentityMiddleware(d.Tokens), handlers.SubmitCommentHandler(d.Comments))
		api.GET("/winner", handlers.GetDailyWinnerHandler(d.Winner))
	}

	return r
}
