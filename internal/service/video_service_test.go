package service

import (
	"Spotlight/internal/api/config"
	"Spotlight/internal/api/dto"
	"Spotlight/internal/model"
	"Spotlight/internal/pkg/consts"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

var testRankingCfg = config.RankingConfig{
	UTCOffsetHours:  9,
	CandidateCap:    1000,
	DefaultPageSize: 20,
	MaxPageSize:     100,
}

var testHeroCfg = config.HeroConfig{Range: "7d", Take: 5, MaxTake: 20}

func newTestVideoService(videos *fakeVideoRepo, support *fakeSupportRepo, pins HeroPinService) *videoServiceImpl {
	if pins == nil {
		pins = NewHeroPinService(nil, nil)
	}
	svc := NewVideoService(videos, support, pins, testRankingCfg, testHeroCfg).(*videoServiceImpl)
	svc.now = func() time.Time { return testNow }
	return svc
}

func ids(list *dto.VideoListDTO) []string {
	out := make([]string, 0, len(list.Items))
	for _, it := range list.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestTrending_DefaultWindow(t *testing.T) {
	repo := newFakeVideoRepo(
		video("a", testNow.Add(-2*time.Hour), 100, 10),
		video("b", testNow.Add(-30*time.Hour), 5000, 500),
	)
	svc := newTestVideoService(repo, &fakeSupportRepo{}, nil)

	res, err := svc.Trending(context.Background(), &dto.TrendingQueryDTO{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, ids(res))
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.PageSize)
	require.NotNil(t, res.Window)
	assert.Equal(t, "24h", res.Window.Range)
	require.NotNil(t, res.Window.Since)
	assert.Equal(t, testNow.Add(-24*time.Hour), *res.Window.Since)
	require.NotNil(t, res.Items[0].TrendingScore)
	assert.Equal(t, 1, res.Items[0].Rank)
}

func TestTrending_WidensEmpty24h(t *testing.T) {
	repo := newFakeVideoRepo(video("b", testNow.Add(-30*time.Hour), 10, 1))
	svc := newTestVideoService(repo, &fakeSupportRepo{}, nil)

	res, err := svc.Trending(context.Background(), &dto.TrendingQueryDTO{Range: "24h"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, ids(res))
	assert.Equal(t, "48h", res.Window.Range)
}

func TestTrending_NoWidenFor7d(t *testing.T) {
	repo := newFakeVideoRepo(video("old", testNow.Add(-10*24*time.Hour), 10, 1))
	svc := newTestVideoService(repo, &fakeSupportRepo{}, nil)

	res, err := svc.Trending(context.Background(), &dto.TrendingQueryDTO{Range: "7d"})
	require.NoError(t, err)

	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, "7d", res.Window.Range)
}

func TestTrending_SortByViewsHasNoScore(t *testing.T) {
	repo := newFakeVideoRepo(
		video("a", testNow.Add(-2*time.Hour), 100, 10),
		video("b", testNow.Add(-3*time.Hour), 900, 0),
	)
	svc := newTestVideoService(repo, &fakeSupportRepo{}, nil)

	res, err := svc.Trending(context.Background(), &dto.TrendingQueryDTO{Sort: "views"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, ids(res))
	for _, it := range res.Items {
		assert.Nil(t, it.TrendingScore)
		assert.Nil(t, it.SupportPoints)
	}
}

func TestTrending_InvalidRange(t *testing.T) {
	svc := newTestVideoService(newFakeVideoRepo(), &fakeSupportRepo{}, nil)

	_, err := svc.Trending(context.Background(), &dto.TrendingQueryDTO{Range: "1d"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestTrending_StoreFailure(t *testing.T) {
	repo := newFakeVideoRepo()
	repo.err = errors.New("connection refused")
	svc := newTestVideoService(repo, &fakeSupportRepo{}, nil)

	_, err := svc.Trending(context.Background(), &dto.TrendingQueryDTO{})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	code, sentinel, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, ServiceUnavailable, code)
	assert.Equal(t, ErrUpstreamUnavailable, sentinel)
}

func TestTrending_PageSizeClamped(t *testing.T) {
	svc := newTestVideoService(newFakeVideoRepo(), &fakeSupportRepo{}, nil)

	res, err := svc.Trending(context.Background(), &dto.TrendingQueryDTO{PageDTO: dto.PageDTO{Page: 3, Take: 500}})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Page)
	assert.Equal(t, 100, res.PageSize)
}

func TestSearch_KeywordAndAllRange(t *testing.T) {
	cat := video("cat", testNow.Add(-100*24*time.Hour), 1, 0)
	cat.Title = ptr("funny cat")
	dog := video("dog", testNow.Add(-time.Hour), 1, 0)
	dog.Title = ptr("dog park")
	svc := newTestVideoService(newFakeVideoRepo(cat, dog), &fakeSupportRepo{}, nil)

	res, err := svc.Search(context.Background(), &dto.SearchQueryDTO{Keyword: "  cat "})
	require.NoError(t, err)

	assert.Equal(t, []string{"cat"}, ids(res))
	assert.Equal(t, "all", res.Window.Range)
	assert.Nil(t, res.Window.Since)
}

func TestSearch_RangeFilters(t *testing.T) {
	repo := newFakeVideoRepo(
		video("new", testNow.Add(-time.Hour), 1, 0),
		video("old", testNow.Add(-3*24*time.Hour), 1, 0),
	)
	svc := newTestVideoService(repo, &fakeSupportRepo{}, nil)

	res, err := svc.Search(context.Background(), &dto.SearchQueryDTO{Range: "1d"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids(res))

	res, err = svc.Search(context.Background(), &dto.SearchQueryDTO{Range: "7d"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, ids(res))
}

func TestSearch_SupportWeighted(t *testing.T) {
	repo := newFakeVideoRepo(
		video("a", testNow.Add(-time.Hour), 100, 10),
		video("b", testNow.Add(-2*time.Hour), 0, 0),
	)
	support := &fakeSupportRepo{events: []*model.SupportEvent{
		{VideoID: "b", CreatedAt: testNow.Add(-30 * time.Minute)},
	}}
	svc := newTestVideoService(repo, support, nil)

	res, err := svc.Search(context.Background(), &dto.SearchQueryDTO{Sort: "support"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, ids(res))
	require.NotNil(t, res.Items[0].SupportPoints)
	assert.Equal(t, int64(1), *res.Items[0].SupportPoints)
	require.NotNil(t, res.Items[0].TrendingScore)
	assert.InDelta(t, 50.0, *res.Items[0].TrendingScore, 1e-9)
	assert.InDelta(t, 30.1, *res.Items[1].TrendingScore, 1e-9)
}

func TestSearch_TrendMode(t *testing.T) {
	repo := newFakeVideoRepo(
		video("a", testNow.Add(-time.Hour), 0, 1),
		video("b", testNow.Add(-time.Hour), 0, 3),
	)
	svc := newTestVideoService(repo, &fakeSupportRepo{}, nil)

	res, err := svc.Search(context.Background(), &dto.SearchQueryDTO{Sort: "trend"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, ids(res))
	assert.NotNil(t, res.Items[0].TrendingScore)
}

func TestHero_PinnedFirstEvenOutsideWindow(t *testing.T) {
	repo := newFakeVideoRepo(
		video("a", testNow.Add(-time.Hour), 1000, 100),
		video("b", testNow.Add(-2*time.Hour), 10, 1),
		video("pinned", testNow.Add(-30*24*time.Hour), 0, 0),
	)
	store := &fakeListStore{lists: map[string][]string{consts.HeroPinnedKey: {"pinned", "missing"}}}
	svc := newTestVideoService(repo, &fakeSupportRepo{}, NewHeroPinService(store, nil))

	res, err := svc.Hero(context.Background(), &dto.HeroQueryDTO{})
	require.NoError(t, err)

	assert.Equal(t, []string{"pinned", "a", "b"}, ids(res))
	assert.Equal(t, 5, res.PageSize)
	assert.Equal(t, "7d", res.Window.Range)
}

func TestHero_TakeAndConfigFallback(t *testing.T) {
	repo := newFakeVideoRepo(
		video("a", testNow.Add(-time.Hour), 1000, 100),
		video("b", testNow.Add(-2*time.Hour), 10, 1),
	)
	store := &fakeListStore{err: errors.New("redis down")}
	svc := newTestVideoService(repo, &fakeSupportRepo{}, NewHeroPinService(store, []string{"b"}))

	res, err := svc.Hero(context.Background(), &dto.HeroQueryDTO{Take: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, ids(res))
	assert.Equal(t, 2, res.Total)
}

func TestSupportRanking_CivilDay(t *testing.T) {
	repo := newFakeVideoRepo(
		video("x", testNow.Add(-48*time.Hour), 0, 0),
		video("y", testNow.Add(-48*time.Hour), 0, 0),
	)
	// testNow 为东九区 21:00，当地零点是 UTC 前一天 15:00
	support := &fakeSupportRepo{events: []*model.SupportEvent{
		{VideoID: "x", CreatedAt: time.Date(2026, 10, 14, 16, 0, 0, 0, time.UTC)},
		{VideoID: "x", CreatedAt: time.Date(2026, 10, 14, 14, 0, 0, 0, time.UTC)},
		{VideoID: "x", CreatedAt: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)},
		{VideoID: "y", CreatedAt: time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC)},
		{VideoID: "y", CreatedAt: time.Date(2026, 10, 15, 2, 0, 0, 0, time.UTC), Amount: ptr(2)},
		{VideoID: "ghost", CreatedAt: time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC), Amount: ptr(9)},
	}}
	svc := newTestVideoService(repo, support, nil)

	res, err := svc.SupportRanking(context.Background(), &dto.RankingQueryDTO{})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC), support.since.UTC())
	assert.Equal(t, []string{"y", "x"}, ids(res))
	assert.Equal(t, int64(3), *res.Items[0].SupportPoints)
	assert.Equal(t, int64(1), *res.Items[1].SupportPoints)
	assert.Equal(t, 1, res.Items[0].Rank)
	assert.Equal(t, 2, res.Items[1].Rank)
	assert.Nil(t, res.Items[0].TrendingScore)
	assert.Equal(t, "1d", res.Window.Range)
}

func TestSupportRanking_MultiDay(t *testing.T) {
	support := &fakeSupportRepo{}
	svc := newTestVideoService(newFakeVideoRepo(), support, nil)

	res, err := svc.SupportRanking(context.Background(), &dto.RankingQueryDTO{Range: "7d"})
	require.NoError(t, err)

	assert.Empty(t, res.Items)
	assert.Equal(t, time.Date(2026, 10, 8, 15, 0, 0, 0, time.UTC), support.since.UTC())
}

func TestGetVideo(t *testing.T) {
	v := video("a", testNow, 1, 1)
	v.Description = ptr("desc")
	v.DurationSec = ptr(45)
	svc := newTestVideoService(newFakeVideoRepo(v), &fakeSupportRepo{}, nil)

	out, err := svc.GetVideo(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", out.ID)
	assert.Equal(t, "desc", *out.Description)
	assert.True(t, out.IsShort)

	_, err = svc.GetVideo(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = svc.GetVideo(context.Background(), " ")
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestInvalidSortAndShorts(t *testing.T) {
	svc := newTestVideoService(newFakeVideoRepo(), &fakeSupportRepo{}, nil)

	_, err := svc.Trending(context.Background(), &dto.TrendingQueryDTO{Sort: "support"})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.Search(context.Background(), &dto.SearchQueryDTO{Sort: "hot"})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.Search(context.Background(), &dto.SearchQueryDTO{Range: "48h"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}
