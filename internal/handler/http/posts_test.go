package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-microblog/internal/validators"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreatePost(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth(aliceAuth)

	post := models.Post{ID: 10, UserID: 1, Content: "hello", CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	m.posts.EXPECT().Create(gomock.Any(), int64(1), "hello").Return(post, nil)

	rec := serve(t, h, http.MethodPost, "/api/posts", models.PostRequest{Content: "hello"}, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeBody[models.Post](t, rec)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, post.Content, got.Content)
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))
}

func TestCreatePost_TooLong(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth(aliceAuth)

	content := strings.Repeat("a", 141)
	m.posts.EXPECT().Create(gomock.Any(), int64(1), content).
		Return(models.Post{}, validators.NewFieldError("content", "is too long (maximum is 140 characters)"))

	rec := serve(t, h, http.MethodPost, "/api/posts", models.PostRequest{Content: content}, true)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody[models.ErrorResponse](t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "content", resp.Fields[0].Field)
}

func TestFeed_FirstPage(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth(aliceAuth)

	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	next := models.FeedCursor{CreatedAt: ts, ID: 7}
	page := models.FeedPage{Posts: []models.Post{{ID: 7, UserID: 2, Content: "x", CreatedAt: ts}}, Next: &next}
	m.feed.EXPECT().FeedPage(gomock.Any(), int64(1), models.FeedCursor{}, 0).Return(page, nil)

	rec := serve(t, h, http.MethodGet, "/api/feed", nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.FeedPage](t, rec)
	require.NotNil(t, got.Next)
	assert.Equal(t, int64(7), got.Next.ID)
	assert.True(t, ts.Equal(got.Next.CreatedAt))
}

func TestFeed_WithCursor(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth(aliceAuth)

	ts := time.Date(2026, 5, 1, 12, 0, 0, 123456789, time.UTC)
	m.feed.EXPECT().FeedPage(gomock.Any(), int64(1), gomock.Any(), 5).
		DoAndReturn(func(_ context.Context, _ int64, cursor models.FeedCursor, _ int) (models.FeedPage, error) {
			assert.Equal(t, int64(7), cursor.ID)
			assert.True(t, ts.Truncate(time.Microsecond).Equal(cursor.CreatedAt))
			return models.FeedPage{Posts: []models.Post{}}, nil
		})

	q := url.Values{}
	q.Set("before_id", "7")
	q.Set("before_ts", ts.Format(time.RFC3339Nano))
	q.Set("limit", "5")

	rec := serve(t, h, http.MethodGet, "/api/feed?"+q.Encode(), nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"posts":[]`)
	assert.NotContains(t, rec.Body.String(), `"next"`)
}

func TestFeed_CursorOffsetNormalizedToUTC(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth(aliceAuth)

	want := time.Date(2026, 5, 1, 7, 0, 0, 250000000, time.UTC)
	m.feed.EXPECT().FeedPage(gomock.Any(), int64(1), gomock.Any(), 0).
		DoAndReturn(func(_ context.Context, _ int64, cursor models.FeedCursor, _ int) (models.FeedPage, error) {
			assert.Equal(t, int64(7), cursor.ID)
			assert.True(t, want.Equal(cursor.CreatedAt))
			assert.Equal(t, time.UTC, cursor.CreatedAt.Location())
			return models.FeedPage{Posts: []models.Post{}}, nil
		})

	q := url.Values{}
	q.Set("before_id", "7")
	q.Set("before_ts", "2026-05-01T12:00:00.25+05:00")

	rec := serve(t, h, http.MethodGet, "/api/feed?"+q.Encode(), nil, true)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFeed_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "id without timestamp", query: "before_id=7"},
		{name: "timestamp without id", query: "before_ts=2026-05-01T12:00:00Z"},
		{name: "bad timestamp", query: "before_id=7&before_ts=yesterday"},
		{name: "bad id", query: "before_id=x&before_ts=2026-05-01T12:00:00Z"},
		{name: "bad limit", query: "limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.expectAuth(aliceAuth)

			rec := serve(t, h, http.MethodGet, "/api/feed?"+tt.query, nil, true)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
