package content

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"villa/internal/availability"
	"villa/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu      sync.Mutex
	content *SiteContent
	saves   int
}

func (r *memoryRepo) Get(context.Context) (*SiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.content == nil {
		r.content = DefaultSiteContent()
	}
	cp := *r.content
	return &cp, nil
}

func (r *memoryRepo) Mutate(ctx context.Context, fn MutateFunc) (*SiteContent, bool, error) {
	if _, err := r.Get(ctx); err != nil {
		return nil, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *r.content
	changed, err := fn(&cp)
	if err != nil {
		return nil, false, err
	}
	if changed {
		r.content = &cp
		r.saves++
	}
	out := *r.content
	return &out, changed, nil
}

type memoryCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deletes int
}

func newMemoryCache() *memoryCache { return &memoryCache{items: map[string][]byte{}} }

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.items[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(context.Context, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string][]byte{}
	c.deletes++
	return nil
}

func (c *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}
	data, err := fetcher()
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	return c.Get(ctx, key, dest)
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func newTestService() (Service, *memoryRepo) {
	repo := &memoryRepo{}
	return NewService(repo), repo
}

func TestBlockedDates_AddRemoveRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ReplaceBlockedDates(ctx, []string{"2024-12-25", "2024-12-31"})
	require.NoError(t, err)
	original, err := svc.BlockedDates(ctx)
	require.NoError(t, err)

	added, err := svc.AddBlockedDate(ctx, "2024-12-28")
	require.NoError(t, err)
	assert.True(t, added)

	removed, err := svc.RemoveBlockedDate(ctx, "2024-12-28")
	require.NoError(t, err)
	assert.True(t, removed)

	after, err := svc.BlockedDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, after)
}

func TestBlockedDates_AddIsIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	added, err := svc.AddBlockedDate(ctx, "2024-12-25")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddBlockedDate(ctx, " 2024-12-25 ")
	require.NoError(t, err)
	assert.False(t, added)

	blocked, err := svc.BlockedDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-25"}, blocked)
	assert.Equal(t, 1, repo.saves)
}

func TestBlockedDates_RemoveMissingIsNoop(t *testing.T) {
	svc, repo := newTestService()
	removed, err := svc.RemoveBlockedDate(context.Background(), "2024-12-25")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, repo.saves)
}

func TestBlockedDates_RejectsInvalidDates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, bad := range []string{"", "2024-13-01", "25/12/2024", "2024-02-30"} {
		_, err := svc.AddBlockedDate(ctx, bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
		_, err = svc.RemoveBlockedDate(ctx, bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}

	_, err := svc.ReplaceBlockedDates(ctx, []string{"2024-12-25", "tomorrow"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBlockedDates_ReplaceNormalizes(t *testing.T) {
	svc, _ := newTestService()
	got, err := svc.ReplaceBlockedDates(context.Background(), []string{"2024-12-31", "2024-12-25", "2024-12-31"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-25", "2024-12-31"}, got)
}

func TestBlockedDates_ConcurrentAddsKeepEveryDate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	days := []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05"}
	var wg sync.WaitGroup
	for _, d := range days {
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func(d string) {
				defer wg.Done()
				_, _ = svc.AddBlockedDate(ctx, d)
			}(d)
		}
	}
	wg.Wait()

	blocked, err := svc.BlockedDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, days, blocked)
}

func TestUpdatePricing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	price := 120.0

	updated, err := svc.UpdatePricing(ctx, UpdatePricingRequest{
		DefaultPrice: &price,
		SeasonalPrices: []availability.SeasonalPrice{
			{Name: "Summer", StartDate: "2024-07-01", EndDate: "2024-07-31", Price: 200},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.DefaultPrice)

	pricing, err := svc.Pricing(ctx)
	require.NoError(t, err)
	require.Len(t, pricing.SeasonalPrices, 1)
	assert.Equal(t, "Summer", pricing.SeasonalPrices[0].Name)

	negative := -1.0
	cases := map[string]UpdatePricingRequest{
		"missing default":  {},
		"negative default": {DefaultPrice: &negative},
		"inverted season": {DefaultPrice: &price, SeasonalPrices: []availability.SeasonalPrice{
			{Name: "Odd", StartDate: "2024-08-01", EndDate: "2024-07-01", Price: 10},
		}},
		"unnamed season": {DefaultPrice: &price, SeasonalPrices: []availability.SeasonalPrice{
			{StartDate: "2024-07-01", EndDate: "2024-07-31", Price: 10},
		}},
		"negative season price": {DefaultPrice: &price, SeasonalPrices: []availability.SeasonalPrice{
			{Name: "Odd", StartDate: "2024-07-01", EndDate: "2024-07-31", Price: -5},
		}},
	}
	for name, req := range cases {
		_, err := svc.UpdatePricing(ctx, req)
		assert.ErrorIs(t, err, ErrValidation, name)
	}
}

func TestUpdateContent_PartialUpdate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	title := "  Casa Blanca  "
	gallery := []GalleryImage{{URL: "https://example.com/a.jpg", Title: "Pool"}}
	updated, err := svc.UpdateContent(ctx, UpdateContentRequest{HeroTitle: &title, GalleryImages: &gallery})
	require.NoError(t, err)

	defaults := DefaultSiteContent()
	assert.Equal(t, "Casa Blanca", updated.HeroTitle)
	assert.Equal(t, defaults.HeroTagline, updated.HeroTagline)
	assert.Len(t, updated.GalleryImages, 1)

	bad := "not-an-email"
	_, err = svc.UpdateContent(ctx, UpdateContentRequest{ContactEmail: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetContent_RendersMarkdownAndCaches(t *testing.T) {
	svc, _ := newTestService()
	memCache := newMemoryCache()
	svc.SetCacheService(memCache, time.Minute)
	ctx := context.Background()

	details := "**Infinity pool**\n<script>alert(1)</script>"
	_, err := svc.UpdateContent(ctx, UpdateContentRequest{AboutDetails: &details})
	require.NoError(t, err)

	resp, err := svc.GetContent(ctx)
	require.NoError(t, err)
	assert.Contains(t, resp.AboutDetailsHTML, "<strong>Infinity pool</strong>")
	assert.NotContains(t, resp.AboutDetailsHTML, "<script>")
	assert.Equal(t, MainContentID, resp.ID)
	assert.Len(t, memCache.items, 1)

	// every write invalidates the public cache
	_, err = svc.AddBlockedDate(ctx, "2024-12-25")
	require.NoError(t, err)
	assert.Empty(t, memCache.items)

	resp, err = svc.GetContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-25"}, []string(resp.BlockedDates))
}
