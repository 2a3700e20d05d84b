package service

import (
	"Spotlight/internal/model"
	"Spotlight/internal/pkg/youtube"
	"Spotlight/internal/repository"
	"context"
	"sort"
	"strings"
	"time"
)

type fakeVideoRepo struct {
	videos   map[string]*model.Video
	upserted []*model.Video
	err      error
}

func newFakeVideoRepo(videos ...*model.Video) *fakeVideoRepo {
	r := &fakeVideoRepo{videos: make(map[string]*model.Video)}
	for _, v := range videos {
		r.videos[v.ID] = v
	}
	return r
}

func (r *fakeVideoRepo) Upsert(_ context.Context, video *model.Video) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, video)
	return nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id string) (*model.Video, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.videos[id], nil
}

func (r *fakeVideoRepo) GetByIDs(_ context.Context, ids []string) ([]*model.Video, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := r.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) List(_ context.Context, query *repository.VideoQuery) ([]*model.Video, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.Video, 0)
	for _, v := range r.videos {
		if !query.Since.IsZero() && v.PublishedAt.Before(query.Since) {
			continue
		}
		if query.Keyword != "" && (v.Title == nil || !strings.Contains(*v.Title, query.Keyword)) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID < out[j].ID
	})
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (r *fakeVideoRepo) ListByPlatformSince(_ context.Context, platform string, since time.Time) ([]*model.Video, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.Video, 0)
	for _, v := range r.videos {
		if v.Platform == platform && !v.PublishedAt.Before(since) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSupportRepo struct {
	events  []*model.SupportEvent
	created []*model.SupportEvent
	since   time.Time
	err     error
}

func (r *fakeSupportRepo) Create(_ context.Context, event *model.SupportEvent) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, event)
	return nil
}

func (r *fakeSupportRepo) ListSince(_ context.Context, since time.Time) ([]*model.SupportEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.since = since
	out := make([]*model.SupportEvent, 0)
	for _, e := range r.events {
		if !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeListStore struct {
	lists map[string][]string
	err   error
}

func (s *fakeListStore) GetList(_ context.Context, key string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lists[key], nil
}

func (s *fakeListStore) ReplaceList(_ context.Context, key string, value []string) error {
	if s.err != nil {
		return s.err
	}
	if s.lists == nil {
		s.lists = make(map[string][]string)
	}
	s.lists[key] = value
	return nil
}

type fakeLocker struct {
	held      map[string]time.Duration
	values    map[string]interface{}
	err       error
	unlockErr error
	unlocked  []string
}

func (l *fakeLocker) TryLock(_ context.Context, key string, value interface{}, expiration time.Duration, _ int) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.held == nil {
		l.held = make(map[string]time.Duration)
	}
	if _, ok := l.held[key]; ok {
		return false, nil
	}
	if l.values == nil {
		l.values = make(map[string]interface{})
	}
	l.held[key] = expiration
	l.values[key] = value
	return true, nil
}

func (l *fakeLocker) UnLock(_ context.Context, key string, value interface{}) error {
	if l.unlockErr != nil {
		return l.unlockErr
	}
	if l.values[key] != value {
		return nil
	}
	delete(l.held, key)
	delete(l.values, key)
	l.unlocked = append(l.unlocked, key)
	return nil
}

type fakeFetcher struct {
	videos    map[string]*youtube.Video
	requested [][]string
	err       error
}

func (f *fakeFetcher) ListVideos(_ context.Context, ids []string) ([]*youtube.Video, error) {
	f.requested = append(f.requested, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*youtube.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func ptr[T any](v T) *T {
	return &v
}

func video(id string, publishedAt time.Time, views, likes int64) *model.Video {
	return &model.Video{
		ID:              id,
		Platform:        model.PlatformYouTube,
		PlatformVideoID: "yt-" + id,
		Title:           ptr("title " + id),
		URL:             ptr("https://www.youtube.com/watch?v=" + id),
		PublishedAt:     publishedAt,
		Views:           ptr(views),
		Likes:           ptr(likes),
	}
}
