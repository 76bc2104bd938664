package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotnews-aggregator/internal/entity"
	"hotnews-aggregator/internal/news/dto"
	"hotnews-aggregator/internal/news/provider"
	"hotnews-aggregator/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlatforms() []entity.Platform {
	return []entity.Platform{
		{ID: "weibo", Name: "Weibo", Category: entity.CategorySocial, Enabled: true},
		{ID: "zhihu", Name: "Zhihu", Category: entity.CategorySocial, Enabled: true},
		{ID: "36kr", Name: "36Kr", Category: entity.CategoryTech, Enabled: true},
	}
}

func itemList(n int) []provider.Item {
	items := make([]provider.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, provider.Item{
			Title: "item",
			URL:   "https://example.com",
		})
	}
	return items
}

func TestRefresh_AllPlatformsSucceed(t *testing.T) {
	newsRepo := newFakeNewsRepo()
	locker := newFakeLocker()
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{items: map[string][]provider.Item{
			"weibo": itemList(3),
			"zhihu": itemList(2),
			"36kr":  itemList(1),
		}},
		locker,
		testLogger(),
		AggregatorOptions{},
	)

	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, 6, report.TotalInserted)
	assert.Equal(t, 0, report.TotalFailed)
	assert.Empty(t, report.FailedPlatforms)
	assert.Equal(t, "fetched news: inserted 6 items", report.Message)

	assert.Len(t, newsRepo.insertedFor("weibo"), 3)
	assert.Len(t, locker.acquired, 3)
	assert.Len(t, locker.released, 3)
}

func TestRefresh_OneFailureDoesNotAffectSiblings(t *testing.T) {
	newsRepo := newFakeNewsRepo()
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{
			items: map[string][]provider.Item{
				"weibo": itemList(2),
				"36kr":  itemList(2),
			},
			errs: map[string]error{
				"zhihu": &provider.FetchError{Kind: provider.KindTimeout},
			},
		},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, 4, report.TotalInserted)
	assert.Equal(t, 1, report.TotalFailed)
	assert.Equal(t, []string{"Zhihu(timeout)"}, report.FailedPlatforms)
	assert.Contains(t, report.Message, "1 platforms failed: Zhihu(timeout)")
}

func TestRefresh_FailureReasonTags(t *testing.T) {
	platforms := []entity.Platform{
		{ID: "weibo", Name: "Weibo", Enabled: true},
		{ID: "zhihu", Name: "Zhihu", Enabled: true},
		{ID: "unlisted", Name: "Unlisted", Enabled: true},
	}
	newsRepo := newFakeNewsRepo()
	newsRepo.insertErr["zhihu"] = errors.New("connection reset")

	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: platforms},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{
			items: map[string][]provider.Item{"zhihu": itemList(1)},
			errs: map[string]error{
				"weibo": &provider.FetchError{Kind: provider.KindHTTP, StatusCode: 503},
			},
		},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalFailed)
	assert.Equal(t, []string{
		"Unlisted(no mapping)",
		"Weibo(HTTP 503)",
		"Zhihu(insert failed: connection reset)",
	}, report.FailedPlatforms)
}

func TestRefresh_EmptyListIsNotAFailure(t *testing.T) {
	newsRepo := newFakeNewsRepo()
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()[:1]},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{items: map[string][]provider.Item{"weibo": {}}},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalInserted)
	assert.Equal(t, 0, report.TotalFailed)
	assert.Empty(t, newsRepo.deleted, "no batch should be touched for an empty result")
}

func TestRefresh_DeleteFailureStillInserts(t *testing.T) {
	newsRepo := newFakeNewsRepo()
	newsRepo.deleteErr = errors.New("stale connection")
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()[:1]},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{items: map[string][]provider.Item{"weibo": itemList(1)}},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	// Losing the old batch's cleanup must not lose the fresh batch.
	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalFailed)
	assert.Equal(t, 1, report.TotalInserted)
	assert.Len(t, newsRepo.insertedFor("weibo"), 1)
}

// blockingFetcher holds every call for a fixed delay before answering.
type blockingFetcher struct {
	delay time.Duration
	items []provider.Item
}

func (f *blockingFetcher) Fetch(ctx context.Context, apiParam string, limit int) ([]provider.Item, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return f.items, nil
}

func TestRefresh_FanOutRunsConcurrently(t *testing.T) {
	platforms := []entity.Platform{
		{ID: "weibo", Name: "Weibo", Enabled: true},
		{ID: "zhihu", Name: "Zhihu", Enabled: true},
		{ID: "douyin", Name: "Douyin", Enabled: true},
		{ID: "bilibili", Name: "Bilibili", Enabled: true},
		{ID: "baidu", Name: "Baidu", Enabled: true},
		{ID: "hupu", Name: "Hupu", Enabled: true},
	}
	delay := 200 * time.Millisecond
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: platforms},
		newFakeNewsRepo(),
		&fakeConfigSvc{limit: 20},
		&blockingFetcher{delay: delay, items: itemList(1)},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{MaxConcurrent: 8},
	)

	start := time.Now()
	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, len(platforms), report.TotalInserted)
	// Serial execution would take |platforms| * delay; concurrent fan-out
	// stays near a single delay.
	assert.Less(t, elapsed, time.Duration(len(platforms))*delay/2,
		"fan-out took %v, expected well under %v", elapsed, time.Duration(len(platforms))*delay)
}

func TestRefresh_CancelledContextSkipsFetching(t *testing.T) {
	fetcher := &fakeFetcher{items: map[string][]provider.Item{"weibo": itemList(1)}}
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()[:1]},
		newFakeNewsRepo(),
		&fakeConfigSvc{limit: 20},
		fetcher,
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Refresh(ctx, &dto.RefreshRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalFailed)
	assert.Equal(t, []string{"Weibo(cancelled)"}, report.FailedPlatforms)
	assert.Equal(t, 0, fetcher.callCount())
}

func TestRefresh_PartitionsByUTCDate(t *testing.T) {
	// Pin the process zone far from UTC so a local-time partition key would
	// land on a different calendar day.
	offsetHours := -13 // local calendar day behind UTC while UTC is before 13:00
	if time.Now().UTC().Hour() >= 13 {
		offsetHours = 13 // and ahead of UTC for the rest of the day
	}
	restore := time.Local
	time.Local = time.FixedZone("far-from-utc", offsetHours*3600)
	defer func() { time.Local = restore }()

	newsRepo := newFakeNewsRepo()
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()[:1]},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{items: map[string][]provider.Item{"weibo": itemList(1)}},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)

	batch := newsRepo.insertedFor("weibo")
	require.Len(t, batch, 1)
	assert.Equal(t, utils.FormatDate(time.Now().UTC()), batch[0].FetchedDate)
	assert.Equal(t, time.UTC, batch[0].FetchedAt.Location())
}

func TestRefresh_LockedPlatformSkipped(t *testing.T) {
	locker := newFakeLocker()
	locker.denied["weibo"] = true

	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()[:1]},
		newFakeNewsRepo(),
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{items: map[string][]provider.Item{"weibo": itemList(2)}},
		locker,
		testLogger(),
		AggregatorOptions{},
	)

	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalFailed)
	assert.Equal(t, []string{"Weibo(refresh in progress)"}, report.FailedPlatforms)
}

func TestRefresh_BatchScoringAndRanks(t *testing.T) {
	newsRepo := newFakeNewsRepo()
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()[:1]},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{items: map[string][]provider.Item{
			"weibo": {
				{Title: "  top story  ", URL: "https://example.com/1", Content: "<p>body &amp; more</p>", Source: "weibo"},
				{Title: "second", URL: "https://example.com/2"},
			},
		}},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)

	batch := newsRepo.insertedFor("weibo")
	require.Len(t, batch, 2)

	first := batch[0]
	assert.Equal(t, "top story", first.Title)
	assert.Equal(t, float64(100), first.APIScore)
	assert.Equal(t, float64(100), first.FinalScore)
	require.NotNil(t, first.HotRank)
	assert.Equal(t, 1, *first.HotRank)
	require.NotNil(t, first.ContentSnippet)
	assert.Equal(t, "body & more", *first.ContentSnippet)
	assert.Equal(t, "weibo", first.Extra["source"])

	second := batch[1]
	assert.Equal(t, float64(99), second.FinalScore)
	require.NotNil(t, second.HotRank)
	assert.Equal(t, 2, *second.HotRank)
	assert.Nil(t, second.ContentSnippet)
}

func TestRefresh_ReplacesPreviousBatch(t *testing.T) {
	newsRepo := newFakeNewsRepo()
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()[:1]},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{items: map[string][]provider.Item{"weibo": itemList(3)}},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)

	// A second cycle on the same day replaces the batch instead of stacking it.
	assert.Len(t, newsRepo.insertedFor("weibo"), 3)
	assert.Len(t, newsRepo.deleted, 2)
}

func TestRefresh_SelectsRequestedSubset(t *testing.T) {
	newsRepo := newFakeNewsRepo()
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()},
		newsRepo,
		&fakeConfigSvc{limit: 20},
		&fakeFetcher{items: map[string][]provider.Item{
			"weibo": itemList(1),
			"zhihu": itemList(1),
			"36kr":  itemList(1),
		}},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{Platforms: []string{"zhihu"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalInserted)
	assert.Empty(t, newsRepo.insertedFor("weibo"))

	report, err = svc.Refresh(context.Background(), &dto.RefreshRequest{Category: "tech"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalInserted)
	assert.Len(t, newsRepo.insertedFor("36kr"), 1)
}

func TestRefresh_FetchLimitErrorFailsCycle(t *testing.T) {
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()},
		newFakeNewsRepo(),
		&fakeConfigSvc{err: errors.New("db down")},
		&fakeFetcher{},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch limit")
}

func TestRefresh_FetchLimitTruncates(t *testing.T) {
	newsRepo := newFakeNewsRepo()
	svc := NewAggregatorService(
		&fakePlatformRepo{platforms: testPlatforms()[:1]},
		newsRepo,
		&fakeConfigSvc{limit: 2},
		&fakeFetcher{items: map[string][]provider.Item{"weibo": itemList(10)}},
		newFakeLocker(),
		testLogger(),
		AggregatorOptions{},
	)

	report, err := svc.Refresh(context.Background(), &dto.RefreshRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalInserted)
}
