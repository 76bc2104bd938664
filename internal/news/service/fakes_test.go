package service

import (
	"context"
	"sync"
	"time"

	"hotnews-aggregator/internal/entity"
	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/provider"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// fakePlatformRepo serves a fixed platform list.
type fakePlatformRepo struct {
	platforms []entity.Platform
	err       error
}

func (f *fakePlatformRepo) FindAll(ctx context.Context, enabledOnly bool) ([]entity.Platform, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !enabledOnly {
		return f.platforms, nil
	}
	out := make([]entity.Platform, 0, len(f.platforms))
	for _, p := range f.platforms {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlatformRepo) FindByID(ctx context.Context, id string) (*entity.Platform, error) {
	for _, p := range f.platforms {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePlatformRepo) FindEnabledByIDs(ctx context.Context, ids []string) ([]entity.Platform, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]entity.Platform, 0, len(ids))
	for _, p := range f.platforms {
		if p.Enabled && wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlatformRepo) FindEnabledByCategory(ctx context.Context, category entity.PlatformCategory) ([]entity.Platform, error) {
	out := make([]entity.Platform, 0, len(f.platforms))
	for _, p := range f.platforms {
		if p.Enabled && p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlatformRepo) Update(ctx context.Context, platform *entity.Platform) error {
	return nil
}

// fakeNewsRepo records batches; safe for the concurrent fan-out.
type fakeNewsRepo struct {
	mu        sync.Mutex
	deleted   []string // "platformID/fetchedDate"
	deleteErr error
	inserted  map[string][]entity.News
	insertErr map[string]error // per platform id
	latest    map[string][]entity.News
	hot       []entity.News

	findResult []entity.News
	lastQuery  repository.NewsQuery
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{
		inserted:  make(map[string][]entity.News),
		insertErr: make(map[string]error),
		latest:    make(map[string][]entity.News),
	}
}

func (f *fakeNewsRepo) DeleteBatch(ctx context.Context, platformID, fetchedDate string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, platformID+"/"+fetchedDate)
	delete(f.inserted, platformID)
	return nil
}

func (f *fakeNewsRepo) InsertBatch(ctx context.Context, items []entity.News) error {
	if len(items) == 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	platformID := items[0].PlatformID
	if err, ok := f.insertErr[platformID]; ok {
		return err
	}
	f.inserted[platformID] = append(f.inserted[platformID], items...)
	return nil
}

func (f *fakeNewsRepo) Find(ctx context.Context, q repository.NewsQuery) ([]entity.News, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	return f.findResult, nil
}

func (f *fakeNewsRepo) FindByID(ctx context.Context, id string) (*entity.News, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNewsRepo) FindHot(ctx context.Context, limit int) ([]entity.News, error) {
	if limit < len(f.hot) {
		return f.hot[:limit], nil
	}
	return f.hot, nil
}

func (f *fakeNewsRepo) FindLatestByPlatform(ctx context.Context, platformID string, limit int) ([]entity.News, error) {
	return f.latest[platformID], nil
}

func (f *fakeNewsRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeNewsRepo) insertedFor(platformID string) []entity.News {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inserted[platformID]
}

// fakeConfigSvc serves a fixed fetch limit.
type fakeConfigSvc struct {
	limit int
	err   error
}

func (f *fakeConfigSvc) FetchLimit(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.limit, nil
}

func (f *fakeConfigSvc) GetAll(ctx context.Context) ([]dto.SystemConfigResponse, error) {
	return nil, nil
}

func (f *fakeConfigSvc) Update(ctx context.Context, key, value string) error {
	return nil
}

// fakeFetcher answers per upstream api param.
type fakeFetcher struct {
	items map[string][]provider.Item
	errs  map[string]error

	mu    sync.Mutex
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, apiParam string, limit int) ([]provider.Item, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.errs[apiParam]; ok {
		return nil, err
	}
	items := f.items[apiParam]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeLocker grants or denies every acquire.
type fakeLocker struct {
	mu       sync.Mutex
	denied   map[string]bool // platform ids to deny
	acquired []string
	released []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{denied: make(map[string]bool)}
}

func (f *fakeLocker) Acquire(ctx context.Context, platformID, fetchedDate string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.denied[platformID] {
		return false, nil
	}
	f.acquired = append(f.acquired, platformID)
	return true, nil
}

func (f *fakeLocker) Release(ctx context.Context, platformID, fetchedDate string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, platformID)
}

// fakeSearchHistoryRepo records keywords in memory.
type fakeSearchHistoryRepo struct {
	recorded      []string
	recordedUsers []*string
	recordErr     error
	top           []entity.SearchHistory
	byUser        map[string][]entity.SearchHistory
}

func (f *fakeSearchHistoryRepo) Record(ctx context.Context, userID *string, keyword string) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, keyword)
	f.recordedUsers = append(f.recordedUsers, userID)
	return nil
}

func (f *fakeSearchHistoryRepo) FindTopKeywords(ctx context.Context, limit int) ([]entity.SearchHistory, error) {
	if limit < len(f.top) {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeSearchHistoryRepo) FindByUser(ctx context.Context, userID string, limit int) ([]entity.SearchHistory, error) {
	return f.byUser[userID], nil
}

// fakePreferenceRepo serves one saved preference.
type fakePreferenceRepo struct {
	preference *entity.UserPreference
	saved      *entity.UserPreference
}

func (f *fakePreferenceRepo) Get(ctx context.Context, userID string) (*entity.UserPreference, error) {
	if f.preference != nil && f.preference.UserID == userID {
		return f.preference, nil
	}
	return nil, nil
}

func (f *fakePreferenceRepo) Save(ctx context.Context, preference *entity.UserPreference) error {
	f.saved = preference
	return nil
}
