package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fotofeed/cmd/api/auth"
	"fotofeed/cmd/api/dto"
	"fotofeed/cmd/api/services"
	"fotofeed/cmd/internal/logger"
)

type CommentSubmitter interface {
	Submit(ctx context.Context, caller *auth.Identity, req services.SubmitCommentRequest) error
}

// SubmitCommentHandler handles POST /comments.
// An unreadable body is passed on as an empty request so the caller checks still run first.
func SubmitCommentHandler(svc CommentSubmitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.SubmitCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Log.Debugf("comment body not decodable: %v", err)
			req = services.SubmitCommentRequest{}
		}

		if err := svc.Submit(c.Request.Context(), auth.IdentityFromContext(c), req); err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.SuccessResponseDTO{Success: true})
	}
}
