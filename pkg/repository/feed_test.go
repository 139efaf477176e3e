package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newshub/pkg/domain"
)

func TestFeedRepository_CreateAndLoad(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	recs := []domain.FeedRecord{
		{Feed: domain.Feed{ID: "lenta", Name: "Lenta", URL: "https://lenta.ru/rss", Category: domain.CategoryDomestic}, Selected: true},
		{Feed: domain.Feed{ID: "bbc", Name: "BBC", URL: "https://feeds.bbci.co.uk/news/rss.xml", Category: domain.CategoryInternational}},
	}
	require.NoError(t, repos.Feed.CreateFeeds(ctx, recs))

	custom := domain.FeedRecord{Feed: domain.Feed{ID: "custom_1", Name: "Mine", URL: "http://x.example.com/rss",
		Category: domain.CategoryCustom}, Selected: true}
	require.NoError(t, repos.Feed.CreateFeed(ctx, custom))

	// duplicate id ignored
	require.NoError(t, repos.Feed.CreateFeed(ctx, domain.FeedRecord{Feed: domain.Feed{ID: "bbc", Name: "other", URL: "http://other"}}))

	loaded, err := repos.Feed.LoadFeeds(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "lenta", loaded[0].ID)
	assert.Equal(t, "bbc", loaded[1].ID)
	assert.Equal(t, "custom_1", loaded[2].ID)
	assert.Equal(t, "BBC", loaded[1].Name)
	assert.Equal(t, domain.CategoryCustom, loaded[2].Category)
	assert.True(t, loaded[0].Selected)
	assert.False(t, loaded[1].Selected)
	assert.False(t, loaded[2].CreatedAt.IsZero())
}

func TestFeedRepository_SetSelected(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repos.Feed.CreateFeeds(ctx, []domain.FeedRecord{
		{Feed: domain.Feed{ID: "a", Name: "A", URL: "http://a"}, Selected: true},
		{Feed: domain.Feed{ID: "b", Name: "B", URL: "http://b"}},
		{Feed: domain.Feed{ID: "c", Name: "C", URL: "http://c"}},
	}))

	require.NoError(t, repos.Feed.SetSelected(ctx, []string{"b", "c", "unknown"}))
	loaded, err := repos.Feed.LoadFeeds(ctx)
	require.NoError(t, err)
	selected := map[string]bool{}
	for _, f := range loaded {
		selected[f.ID] = f.Selected
	}
	assert.Equal(t, map[string]bool{"a": false, "b": true, "c": true}, selected)

	require.NoError(t, repos.Feed.SetSelected(ctx, nil))
	loaded, err = repos.Feed.LoadFeeds(ctx)
	require.NoError(t, err)
	for _, f := range loaded {
		assert.False(t, f.Selected, f.ID)
	}
}
