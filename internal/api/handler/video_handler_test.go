package handler

import (
	"Spotlight/internal/api/dto"
	"Spotlight/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoService struct {
	trending *dto.TrendingQueryDTO
	search   *dto.SearchQueryDTO
	hero     *dto.HeroQueryDTO
	ranking  *dto.RankingQueryDTO
	err      error
}

func (f *fakeVideoService) Trending(_ context.Context, query *dto.TrendingQueryDTO) (*dto.VideoListDTO, error) {
	f.trending = query
	return f.list(query.Range)
}

func (f *fakeVideoService) Search(_ context.Context, query *dto.SearchQueryDTO) (*dto.VideoListDTO, error) {
	f.search = query
	return f.list(query.Range)
}

func (f *fakeVideoService) Hero(_ context.Context, query *dto.HeroQueryDTO) (*dto.VideoListDTO, error) {
	f.hero = query
	return f.list("7d")
}

func (f *fakeVideoService) SupportRanking(_ context.Context, query *dto.RankingQueryDTO) (*dto.VideoListDTO, error) {
	f.ranking = query
	return f.list(query.Range)
}

func (f *fakeVideoService) GetVideo(_ context.Context, id string) (*dto.VideoDetailDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != "a" {
		return nil, service.ErrVideoNotFound
	}
	return &dto.VideoDetailDTO{VideoSummaryDTO: dto.VideoSummaryDTO{ID: "a"}}, nil
}

func (f *fakeVideoService) list(r string) (*dto.VideoListDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.VideoListDTO{
		Items:    []*dto.VideoSummaryDTO{{ID: "a", Rank: 1}},
		Page:     1,
		PageSize: 20,
		Total:    1,
		Window:   &dto.WindowDTO{Range: r},
	}, nil
}

type fakeSupportService struct {
	videoID   string
	clientKey string
	req       *dto.SupportDTO
	err       error
}

func (f *fakeSupportService) Support(_ context.Context, videoID, clientKey string, req *dto.SupportDTO) (*dto.SupportResultDTO, error) {
	f.videoID, f.clientKey, f.req = videoID, clientKey, req
	if f.err != nil {
		return nil, f.err
	}
	points := int64(1)
	if req.Amount != nil {
		points = int64(*req.Amount)
	}
	return &dto.SupportResultDTO{VideoID: videoID, Points: points, SupportTotal: points}, nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(videoSvc service.VideoService, supportSvc service.SupportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewVideoHandler(videoSvc, supportSvc)
	r := gin.New()
	g := r.Group("/api/videos")
	g.GET("/trending", h.Trending)
	g.GET("/search", h.Search)
	g.GET("/hero", h.Hero)
	g.GET("/ranking", h.Ranking)
	g.GET("/:id", h.GetVideo)
	g.POST("/:id/support", h.Support)
	return r
}

func do(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "10.0.0.1:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestTrendingHandler(t *testing.T) {
	svc := &fakeVideoService{}
	r := newTestRouter(svc, &fakeSupportService{})

	w, env := do(t, r, http.MethodGet, "/api/videos/trending?range=48h&shorts=exclude&sort=views&page=2&take=10", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
	require.NotNil(t, svc.trending)
	assert.Equal(t, "48h", svc.trending.Range)
	assert.Equal(t, "exclude", svc.trending.Shorts)
	assert.Equal(t, "views", svc.trending.Sort)
	assert.Equal(t, 2, svc.trending.Page)
	assert.Equal(t, 10, svc.trending.Size())

	var list dto.VideoListDTO
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, "48h", list.Window.Range)
	assert.Len(t, list.Items, 1)
}

func TestTrendingHandler_InvalidQuery(t *testing.T) {
	svc := &fakeVideoService{}
	r := newTestRouter(svc, &fakeSupportService{})

	for _, target := range []string{
		"/api/videos/trending?range=1d",
		"/api/videos/trending?shorts=maybe",
		"/api/videos/trending?take=101",
		"/api/videos/trending?sort=trend",
		"/api/videos/trending?page=1001",
		"/api/videos/trending?page=abc",
	} {
		_, env := do(t, r, http.MethodGet, target, "")
		assert.Equal(t, 400, env.Code, target)
	}
	assert.Nil(t, svc.trending)
}

func TestSearchHandler(t *testing.T) {
	svc := &fakeVideoService{}
	r := newTestRouter(svc, &fakeSupportService{})

	_, env := do(t, r, http.MethodGet, "/api/videos/search?q=cat&range=all&sort=support", "")

	assert.Equal(t, 200, env.Code)
	require.NotNil(t, svc.search)
	assert.Equal(t, "cat", svc.search.Keyword)
	assert.Equal(t, "support", svc.search.Sort)
}

func TestHeroHandler(t *testing.T) {
	svc := &fakeVideoService{}
	r := newTestRouter(svc, &fakeSupportService{})

	_, env := do(t, r, http.MethodGet, "/api/videos/hero?take=3", "")
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, 3, svc.hero.Take)

	_, env = do(t, r, http.MethodGet, "/api/videos/hero?take=21", "")
	assert.Equal(t, 400, env.Code)
}

func TestRankingHandler_Upstream(t *testing.T) {
	svc := &fakeVideoService{err: service.ErrUpstreamUnavailable}
	r := newTestRouter(svc, &fakeSupportService{})

	_, env := do(t, r, http.MethodGet, "/api/videos/ranking?range=7d", "")
	assert.Equal(t, 503, env.Code)
	assert.Equal(t, "7d", svc.ranking.Range)
}

func TestGetVideoHandler(t *testing.T) {
	r := newTestRouter(&fakeVideoService{}, &fakeSupportService{})

	_, env := do(t, r, http.MethodGet, "/api/videos/a", "")
	assert.Equal(t, 200, env.Code)

	_, env = do(t, r, http.MethodGet, "/api/videos/zzz", "")
	assert.Equal(t, 404, env.Code)
}

func TestSupportHandler(t *testing.T) {
	support := &fakeSupportService{}
	r := newTestRouter(&fakeVideoService{}, support)

	_, env := do(t, r, http.MethodPost, "/api/videos/a/support", "")
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "a", support.videoID)
	assert.Equal(t, "10.0.0.1", support.clientKey)
	assert.Nil(t, support.req.Amount)

	_, env = do(t, r, http.MethodPost, "/api/videos/a/support", `{"amount":3}`)
	assert.Equal(t, 200, env.Code)
	var res dto.SupportResultDTO
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(3), res.Points)

	_, env = do(t, r, http.MethodPost, "/api/videos/a/support", `{"amount":11}`)
	assert.Equal(t, 400, env.Code)

	_, env = do(t, r, http.MethodPost, "/api/videos/a/support", `{"amount":"x"}`)
	assert.Equal(t, 400, env.Code)
}

func TestSupportHandler_Limited(t *testing.T) {
	r := newTestRouter(&fakeVideoService{}, &fakeSupportService{err: service.ErrSupportLimited})

	_, env := do(t, r, http.MethodPost, "/api/videos/a/support", `{}`)
	assert.Equal(t, 429, env.Code)
}
