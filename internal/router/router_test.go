package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anonto42/newsroom-social/backend/internal/middleware"
	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/notification"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
	"github.com/anonto42/newsroom-social/backend/internal/testutil"
	"github.com/anonto42/newsroom-social/backend/validators"
)

type recordingTransport struct {
	mu   sync.Mutex
	msgs []notification.Message
	fail bool
}

func (t *recordingTransport) Send(_ context.Context, token string, msg notification.Message) (notification.DeliveryResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, msg)
	if t.fail {
		return notification.DeliveryResult{}, errors.New("push service unavailable")
	}
	return notification.DeliveryResult{Token: token, MessageID: "ok"}, nil
}

func (t *recordingTransport) SendBatch(ctx context.Context, tokens []string, msg notification.Message) ([]notification.DeliveryResult, error) {
	out := make([]notification.DeliveryResult, 0, len(tokens))
	for _, tok := range tokens {
		r, err := t.Send(ctx, tok, msg)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (t *recordingTransport) titles() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.msgs))
	for _, m := range t.msgs {
		out = append(out, m.Title)
	}
	return out
}

type testServer struct {
	e          *echo.Echo
	db         *gorm.DB
	repos      *repositories.Repositories
	dispatcher *notification.Dispatcher
	transport  *recordingTransport
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	tr := &recordingTransport{}

	d := notification.NewDispatcher(notification.Deps{
		Users:     repos.Users,
		Articles:  repos.Articles,
		Followers: repos.Follows,
		Tokens:    repos.DeviceTokens,
		Inbox:     repos.Notifications,
		Transport: tr,
	}, notification.Config{Workers: 1, QueueSize: 16, Timeout: 5 * time.Second})
	d.Start()
	t.Cleanup(func() { _ = d.Stop(context.Background()) })

	e := echo.New()
	e.Validator = validators.NewValidator()
	SetupMiddleware(e)
	SetupRoutes(e, Dependencies{
		Repos:    repos,
		Events:   d,
		Identity: middleware.QueryIdentity(),
	})

	return &testServer{e: e, db: db, repos: repos, dispatcher: d, transport: tr}
}

// drain waits for every queued notification to be handled.
func (s *testServer) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.dispatcher.Stop(ctx))
}

func (s *testServer) do(t *testing.T, method, path string, userID uint, body string) (int, map[string]interface{}) {
	t.Helper()
	if userID != 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path = fmt.Sprintf("%s%suserId=%d", path, sep, userID)
	}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func TestLikeScenario_PushFailureStillReturns200(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner")
	liker := testutil.CreateUser(t, s.db, "liker")
	s.transport.fail = true

	code, _ := s.do(t, http.MethodPost, "/api/v1/notification/register-token", owner.ID, `{"token":"owner-device","deviceType":"ios"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := s.do(t, http.MethodPost, "/api/v1/shared", owner.ID, `{"url":"https://news.example.com/x","title":"Story"}`)
	require.Equal(t, http.StatusOK, code)
	articleID := uint(body["sharedId"].(float64))

	// the liker does not follow the owner
	code, body = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/shared/%d/like", articleID), liker.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["liked"])
	assert.EqualValues(t, 1, body["likeCount"])

	s.drain(t)
	assert.Equal(t, []string{notification.TitleLike}, s.transport.titles())

	unread, err := s.repos.Notifications.GetUnreadCount(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestUnlikeDoesNotNotify(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner")
	liker := testutil.CreateUser(t, s.db, "liker")
	require.NoError(t, s.repos.DeviceTokens.RegisterToken(context.Background(), owner.ID, "tok", "ios", "ua"))
	id, err := s.repos.Articles.CreateSharedArticle(context.Background(), owner.ID, models.CreateSharedArticleRequest{URL: "https://x.test"})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/v1/shared/%d/like", id)
	code, _ := s.do(t, http.MethodPost, path, liker.ID, "")
	require.Equal(t, http.StatusOK, code)
	code, body := s.do(t, http.MethodDelete, path, liker.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["liked"])
	assert.EqualValues(t, 0, body["likeCount"])

	s.drain(t)
	assert.Equal(t, []string{notification.TitleLike}, s.transport.titles())
}

func TestFollowEndpoints(t *testing.T) {
	s := newTestServer(t)
	u := testutil.CreateUser(t, s.db, "u")
	v := testutil.CreateUser(t, s.db, "v")

	code, body := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", u.ID), u.ID, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Cannot follow yourself", body["message"])

	code, _ = s.do(t, http.MethodPost, "/api/v1/users/999/follow", u.ID, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", v.ID), u.ID, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User followed successfully", body["message"])

	code, body = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", v.ID), u.ID, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Already following this user", body["message"])

	code, body = s.do(t, http.MethodGet, "/api/v1/users/following-stats", u.ID, "")
	assert.Equal(t, http.StatusOK, code)
	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["followingCount"])

	code, _ = s.do(t, http.MethodGet, "/api/v1/users/following", 0, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	s.drain(t)
	assert.Equal(t, []string{}, s.transport.titles(), "v has no registered device")
}

func TestBlockHidesArticlesFromFeed(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, s.db, "u")
	v := testutil.CreateUser(t, s.db, "v")
	w := testutil.CreateUser(t, s.db, "w")

	for i := 0; i < 3; i++ {
		_, err := s.repos.Articles.CreateSharedArticle(ctx, v.ID, models.CreateSharedArticleRequest{URL: fmt.Sprintf("https://v.test/%d", i)})
		require.NoError(t, err)
	}
	_, err := s.repos.Articles.CreateSharedArticle(ctx, w.ID, models.CreateSharedArticleRequest{URL: "https://w.test"})
	require.NoError(t, err)

	code, _ := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", v.ID), u.ID, "")
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/block", v.ID), u.ID, `{"reason":"noise"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := s.do(t, http.MethodGet, "/api/v1/shared/feed", u.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])
	for _, a := range body["articles"].([]interface{}) {
		assert.EqualValues(t, w.ID, a.(map[string]interface{})["userId"])
	}

	code, body = s.do(t, http.MethodGet, "/api/v1/shared/feed?followingOnly=true", u.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])

	// the unfiltered list still has everything
	code, body = s.do(t, http.MethodGet, "/api/v1/shared", u.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 4, body["count"])
}

func TestCommentFlow(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s.db, "owner")
	author := testutil.CreateUser(t, s.db, "author")
	stranger := testutil.CreateUser(t, s.db, "stranger")
	require.NoError(t, s.repos.DeviceTokens.RegisterToken(ctx, owner.ID, "tok", "android", "ua"))
	id, err := s.repos.Articles.CreateSharedArticle(ctx, owner.ID, models.CreateSharedArticleRequest{URL: "https://x.test"})
	require.NoError(t, err)
	base := fmt.Sprintf("/api/v1/shared/%d/comments", id)

	code, _ := s.do(t, http.MethodPost, base, author.ID, `{"content":"   "}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := s.do(t, http.MethodPost, base, author.ID, `{"content":"first!"}`)
	require.Equal(t, http.StatusOK, code)
	commentID := uint(body["commentId"].(float64))

	code, body = s.do(t, http.MethodGet, base, author.ID, "")
	require.Equal(t, http.StatusOK, code)
	comments := body["comments"].([]interface{})
	require.Len(t, comments, 1)
	assert.Equal(t, true, comments[0].(map[string]interface{})["canDelete"])

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, commentID), stranger.ID, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, commentID), author.ID, "")
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodGet, base, 0, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])

	code, body = s.do(t, http.MethodGet, "/api/v1/shared/999/comments", author.ID, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Article not found", body["message"])

	s.drain(t)
	assert.Equal(t, []string{notification.TitleComment}, s.transport.titles())
}

func TestReportsAndModeration(t *testing.T) {
	s := newTestServer(t)
	reporter := testutil.CreateUser(t, s.db, "reporter")
	admin := testutil.CreateAdmin(t, s.db, "admin")

	code, body := s.do(t, http.MethodPost, "/api/v1/reports", reporter.ID, `{"contentType":"video","contentId":1,"reason":"spam"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])

	var n int64
	require.NoError(t, s.db.Model(&models.Report{}).Count(&n).Error)
	assert.Zero(t, n)

	code, _ = s.do(t, http.MethodPost, "/api/v1/reports", reporter.ID, `{"contentType":"news","contentId":5,"reason":"fake story"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/reports", reporter.ID, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, body = s.do(t, http.MethodGet, "/api/v1/reports?resolved=false", admin.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])
	report := body["reports"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "reporter", report["reporterName"])
	reportID := uint(report["id"].(float64))

	code, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/reports/%d/resolve", reportID), admin.ID, `{"isResolved":true}`)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPut, "/api/v1/reports/999/resolve", admin.ID, `{"isResolved":true}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodGet, "/api/v1/reports/stats", admin.ID, "")
	require.Equal(t, http.StatusOK, code)
	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["resolved"])
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("pq: relation \"users\" does not exist")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
