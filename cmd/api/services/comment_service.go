package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"fotofeed/cmd/api/auth"
	"fotofeed/cmd/api/moderation"
	"fotofeed/cmd/api/trace"
	"fotofeed/cmd/internal/logger"
	"fotofeed/config"
	"fotofeed/models"
)

type CommentClassifier interface {
	Classify(ctx context.Context, text string) (moderation.Verdict, error)
}

type CommentWriter interface {
	Create(ctx context.Context, c *models.Comment) error
}

type ClassifierQuota interface {
	WaitAndReserve(ctx context.Context) (bool, error)
}

// SubmitCommentRequest is the raw client payload. Fields stay untyped so a
// missing value and a value of the wrong type can both be rejected.
type SubmitCommentRequest struct {
	PostID any `json:"postId"`
	Text   any `json:"text"`
}

// CommentService moderates and stores user comments.
type CommentService struct {
	classifier CommentClassifier
	comments   CommentWriter
	quota      ClassifierQuota
	maxLength  int
	newID      func() string
}

// NewCommentService wires the pipeline. quota may be nil.
func NewCommentService(classifier CommentClassifier, comments CommentWriter, quota ClassifierQuota, maxLength int) *CommentService {
	if maxLength <= 0 {
		maxLength = config.DefaultMaxCommentLength
	}
	return &CommentService{
		classifier: classifier,
		comments:   comments,
		quota:      quota,
		maxLength:  maxLength,
		newID:      uuid.NewString,
	}
}

// Submit runs the checks in order and stops at the first failure. The comment
// is stored only after the classifier found no explicit unsafe signal.
// Returned errors are always *Error.
func (s *CommentService) Submit(ctx context.Context, caller *auth.Identity, req SubmitCommentRequest) error {
	if caller == nil || caller.Subject == "" {
		return newError(KindUnauthenticated, "You must be signed in to comment.")
	}
	if caller.IsAnonymous() {
		return newError(KindPermissionDenied, "Guest accounts cannot comment. Please sign in.")
	}

	postID, ok := req.PostID.(string)
	if !ok || strings.TrimSpace(postID) == "" || strings.Contains(postID, "/") {
		return newError(KindInvalidArgument, "postId is required and must be a string.")
	}
	rawText, ok := req.Text.(string)
	if !ok {
		return newError(KindInvalidArgument, "text is required and must be a string.")
	}

	text := strings.TrimSpace(rawText)
	if text == "" {
		return newError(KindInvalidArgument, "Comment cannot be empty.")
	}
	if utf8.RuneCountInString(text) > s.maxLength {
		return newError(KindInvalidArgument, "Comment is too long.")
	}

	verdict, err := s.classify(ctx, text)
	if err != nil {
		return s.internal(ctx, "comment classification failed", postID, caller, err)
	}
	if verdict.Unsafe() {
		logger.InfoWithFields("comment rejected by moderation", logger.Fields{
			"post_id":      postID,
			"user_id":      caller.Subject,
			"blocked":      verdict.Blocked,
			"block_reason": verdict.BlockReason,
			"request_id":   trace.RequestIDFromContext(ctx),
		})
		return newError(KindInvalidArgument, "Comment violates community guidelines.")
	}

	name, _ := lo.Coalesce(strings.TrimSpace(caller.Name), models.DefaultCommentUserName)
	comment := &models.Comment{
		ID:        s.newID(),
		PostID:    postID,
		Text:      text,
		UserID:    caller.Subject,
		UserName:  name,
		UserImage: lo.EmptyableToPtr(caller.Picture),
		FlagCount: 0,
		IsHidden:  false,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return s.internal(ctx, "comment persistence failed", postID, caller, err)
	}

	logger.InfoWithFields("comment created", logger.Fields{
		"post_id":    postID,
		"comment_id": comment.ID,
		"user_id":    caller.Subject,
		"request_id": trace.RequestIDFromContext(ctx),
	})
	return nil
}

func (s *CommentService) classify(ctx context.Context, text string) (moderation.Verdict, error) {
	if s.quota != nil {
		allowed, err := s.quota.WaitAndReserve(ctx)
		if err != nil {
			return moderation.Verdict{}, err
		}
		if !allowed {
			return moderation.Verdict{}, errClassifierQuotaExhausted
		}
	}
	return s.classifier.Classify(ctx, text)
}

// internal logs the detail and returns the generic retry error. Typed errors pass through.
func (s *CommentService) internal(ctx context.Context, msg, postID string, caller *auth.Identity, err error) error {
	typed := AsError(err)
	if typed.Kind != KindInternal {
		return typed
	}
	logger.ErrorWithFields(msg, logger.Fields{
		"post_id":    postID,
		"user_id":    caller.Subject,
		"error":      err.Error(),
		"request_id": trace.RequestIDFromContext(ctx),
	})
	return typed
}
