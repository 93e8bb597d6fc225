package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotofeed/cmd/api/auth"
	"fotofeed/cmd/api/moderation"
	"fotofeed/models"
)

type fakeClassifier struct {
	verdict moderation.Verdict
	err     error
	calls   []string
}

func (f *fakeClassifier) Classify(_ context.Context, text string) (moderation.Verdict, error) {
	f.calls = append(f.calls, text)
	return f.verdict, f.err
}

type fakeCommentWriter struct {
	created []*models.Comment
	err     error
}

func (f *fakeCommentWriter) Create(_ context.Context, c *models.Comment) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, c)
	return nil
}

type fakeQuota struct {
	allowed bool
	err     error
}

func (f fakeQuota) WaitAndReserve(context.Context) (bool, error) {
	return f.allowed, f.err
}

var signedIn = &auth.Identity{
	Subject:        "uid-42",
	Name:           "Marco",
	Picture:        "https://img/marco.jpg",
	SignInProvider: "google.com",
}

func newTestCommentService(classifier *fakeClassifier, writer *fakeCommentWriter) *CommentService {
	s := NewCommentService(classifier, writer, nil, 500)
	s.newID = func() string { return "c-1" }
	return s
}

func assertKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	var typed *Error
	require.True(t, errors.As(err, &typed), "expected *Error, got %v", err)
	assert.Equal(t, want, typed.Kind)
}

func TestSubmitRejectsMissingIdentity(t *testing.T) {
	classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "SAFE"}}
	writer := &fakeCommentWriter{}

	err := newTestCommentService(classifier, writer).Submit(context.Background(), nil, SubmitCommentRequest{PostID: "p1", Text: "ciao"})

	assertKind(t, err, KindUnauthenticated)
	assert.Empty(t, classifier.calls)
	assert.Empty(t, writer.created)
}

func TestSubmitRejectsAnonymousCaller(t *testing.T) {
	classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "SAFE"}}
	writer := &fakeCommentWriter{}
	guest := &auth.Identity{Subject: "uid-guest", SignInProvider: auth.ProviderAnonymous}

	err := newTestCommentService(classifier, writer).Submit(context.Background(), guest, SubmitCommentRequest{PostID: "p1", Text: "bella foto"})

	assertKind(t, err, KindPermissionDenied)
	assert.Empty(t, classifier.calls)
	assert.Empty(t, writer.created)
}

func TestSubmitValidatesInput(t *testing.T) {
	testCases := []struct {
		name string
		req  SubmitCommentRequest
	}{
		{name: "missing postId", req: SubmitCommentRequest{Text: "ciao"}},
		{name: "numeric postId", req: SubmitCommentRequest{PostID: 12.0, Text: "ciao"}},
		{name: "blank postId", req: SubmitCommentRequest{PostID: "  ", Text: "ciao"}},
		{name: "postId with slash", req: SubmitCommentRequest{PostID: "p1/likes", Text: "ciao"}},
		{name: "missing text", req: SubmitCommentRequest{PostID: "p1"}},
		{name: "text not a string", req: SubmitCommentRequest{PostID: "p1", Text: []any{"a"}}},
		{name: "whitespace only", req: SubmitCommentRequest{PostID: "p1", Text: "   "}},
		{name: "501 characters", req: SubmitCommentRequest{PostID: "p1", Text: strings.Repeat("a", 501)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "SAFE"}}
			writer := &fakeCommentWriter{}

			err := newTestCommentService(classifier, writer).Submit(context.Background(), signedIn, tc.req)

			assertKind(t, err, KindInvalidArgument)
			assert.Empty(t, classifier.calls)
			assert.Empty(t, writer.created)
		})
	}
}

func TestSubmitLengthCountsCharactersAfterTrim(t *testing.T) {
	classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "SAFE"}}
	writer := &fakeCommentWriter{}
	text := "  " + strings.Repeat("è", 500) + "\n"

	err := newTestCommentService(classifier, writer).Submit(context.Background(), signedIn, SubmitCommentRequest{PostID: "p1", Text: text})

	require.NoError(t, err)
	require.Len(t, writer.created, 1)
	assert.Equal(t, strings.Repeat("è", 500), writer.created[0].Text)
}

func TestSubmitPersistsSafeComment(t *testing.T) {
	classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "SAFE"}}
	writer := &fakeCommentWriter{}

	err := newTestCommentService(classifier, writer).Submit(context.Background(), signedIn, SubmitCommentRequest{PostID: "p1", Text: "  Che bel tramonto!  "})

	require.NoError(t, err)
	assert.Equal(t, []string{"Che bel tramonto!"}, classifier.calls)
	require.Len(t, writer.created, 1)
	c := writer.created[0]
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, "p1", c.PostID)
	assert.Equal(t, "Che bel tramonto!", c.Text)
	assert.Equal(t, "uid-42", c.UserID)
	assert.Equal(t, "Marco", c.UserName)
	require.NotNil(t, c.UserImage)
	assert.Equal(t, "https://img/marco.jpg", *c.UserImage)
	assert.Zero(t, c.FlagCount)
	assert.False(t, c.IsHidden)
}

func TestSubmitAppliesProfileDefaults(t *testing.T) {
	classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "SAFE"}}
	writer := &fakeCommentWriter{}
	bare := &auth.Identity{Subject: "uid-7", SignInProvider: "password"}

	err := newTestCommentService(classifier, writer).Submit(context.Background(), bare, SubmitCommentRequest{PostID: "p1", Text: "ok"})

	require.NoError(t, err)
	require.Len(t, writer.created, 1)
	assert.Equal(t, models.DefaultCommentUserName, writer.created[0].UserName)
	assert.Nil(t, writer.created[0].UserImage)
}

func TestSubmitRejectsUnsafeVerdicts(t *testing.T) {
	for name, verdict := range map[string]moderation.Verdict{
		"unsafe text":   {Text: "UNSAFE"},
		"blocked":       {Blocked: true, BlockReason: "SAFETY"},
		"mixed casing":  {Text: "Unsafe"},
		"blocked, safe": {Blocked: true, Text: "SAFE"},
	} {
		t.Run(name, func(t *testing.T) {
			classifier := &fakeClassifier{verdict: verdict}
			writer := &fakeCommentWriter{}

			err := newTestCommentService(classifier, writer).Submit(context.Background(), signedIn, SubmitCommentRequest{PostID: "p1", Text: "..."})

			assertKind(t, err, KindInvalidArgument)
			assert.Contains(t, err.Error(), "community guidelines")
			assert.Empty(t, writer.created)
		})
	}
}

func TestSubmitTreatsUnexpectedVerdictAsSafe(t *testing.T) {
	classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "maybe?"}}
	writer := &fakeCommentWriter{}

	err := newTestCommentService(classifier, writer).Submit(context.Background(), signedIn, SubmitCommentRequest{PostID: "p1", Text: "hmm"})

	require.NoError(t, err)
	assert.Len(t, writer.created, 1)
}

func TestSubmitClassifierFailureIsInternal(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("dial tcp: connection refused")}
	writer := &fakeCommentWriter{}

	err := newTestCommentService(classifier, writer).Submit(context.Background(), signedIn, SubmitCommentRequest{PostID: "p1", Text: "ciao"})

	assertKind(t, err, KindInternal)
	assert.NotContains(t, err.Error(), "connection refused")
	assert.Empty(t, writer.created)
}

func TestSubmitPersistenceFailureIsInternal(t *testing.T) {
	classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "SAFE"}}
	writer := &fakeCommentWriter{err: errors.New("write concern timeout")}

	err := newTestCommentService(classifier, writer).Submit(context.Background(), signedIn, SubmitCommentRequest{PostID: "p1", Text: "ciao"})

	assertKind(t, err, KindInternal)
	assert.NotContains(t, err.Error(), "write concern")
}

func TestSubmitTypedErrorsPassThrough(t *testing.T) {
	typed := newError(KindPermissionDenied, "post is locked")
	classifier := &fakeClassifier{err: typed}

	err := newTestCommentService(classifier, &fakeCommentWriter{}).Submit(context.Background(), signedIn, SubmitCommentRequest{PostID: "p1", Text: "ciao"})

	assert.Same(t, typed, err)
}

func TestSubmitQuotaExhaustedIsInternal(t *testing.T) {
	classifier := &fakeClassifier{verdict: moderation.Verdict{Text: "SAFE"}}
	writer := &fakeCommentWriter{}
	s := NewCommentService(classifier, writer, fakeQuota{allowed: false}, 500)

	err := s.Submit(context.Background(), signedIn, SubmitCommentRequest{PostID: "p1", Text: "ciao"})

	assertKind(t, err, KindInternal)
	assert.Empty(t, classifier.calls)
	assert.Empty(t, writer.created)
}

func TestErrorHTTPStatus(t *testing.T) {
	assert.Equal(t, 401, newError(KindUnauthenticated, "").HTTPStatus())
	assert.Equal(t, 403, newError(KindPermissionDenied, "").HTTPStatus())
	assert.Equal(t, 400, newError(KindInvalidArgument, "").HTTPStatus())
	assert.Equal(t, 404, newError(KindNotFound, "").HTTPStatus())
	assert.Equal(t, 500, newError(KindInternal, "").HTTPStatus())
	assert.Equal(t, KindInternal, AsError(errors.New("x")).Kind)
}
