package services

import (
	"fmt"
	"testing"
	"time"

	"blogfront/app/models"
	"blogfront/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService(t *testing.T) {
	repo := mock.NewSettingsRepository()
	svc := NewSettingsService(repo, "http://default.test/api/")

	t.Run("default when nothing stored", func(t *testing.T) {
		baseURL, stored := svc.BaseURL(testClient)
		assert.Equal(t, "http://default.test/api", baseURL)
		assert.False(t, stored)
	})

	t.Run("remember and resolve", func(t *testing.T) {
		require.NoError(t, svc.Remember(testClient, " http://mine.test/api/ "))

		baseURL, stored := svc.BaseURL(testClient)
		assert.Equal(t, "http://mine.test/api", baseURL)
		assert.True(t, stored)
	})

	t.Run("other browsers keep the default", func(t *testing.T) {
		baseURL, stored := svc.BaseURL("browser-2")
		assert.Equal(t, "http://default.test/api", baseURL)
		assert.False(t, stored)
	})

	t.Run("blank values are ignored", func(t *testing.T) {
		require.NoError(t, svc.Remember(testClient, "  "))
		require.NoError(t, svc.Remember("", "http://x.test"))

		baseURL, _ := svc.BaseURL(testClient)
		assert.Equal(t, "http://mine.test/api", baseURL)
	})
}

func TestBoard(t *testing.T) {
	board := NewBoard()
	posts := []*models.Post{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}

	_, loaded := board.Current("x")
	assert.False(t, loaded)

	first := board.Begin("x")
	second := board.Begin("x")
	assert.False(t, board.Apply("x", first, posts, nil))
	assert.True(t, board.Apply("x", second, posts, nil))
	assert.False(t, board.Apply("x", second, posts, nil), "same response applied twice")

	t.Run("patch copies the render", func(t *testing.T) {
		var committed []*models.Post
		ok := board.Patch("x", 2, func(p *models.Post) { p.Title = "B2" }, func(ps []*models.Post) { committed = ps })
		require.True(t, ok)
		assert.Equal(t, "B", posts[1].Title)

		current, _ := board.Current("x")
		assert.Equal(t, "B2", current[1].Title)
		assert.Equal(t, current, committed)
	})

	t.Run("patch unknown post", func(t *testing.T) {
		assert.False(t, board.Patch("x", 9, func(p *models.Post) {}, nil))
		assert.False(t, board.Patch("nobody", 1, func(p *models.Post) {}, nil))
	})
}

func TestBoardForgetsAbandonedBrowsers(t *testing.T) {
	board := NewBoard()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	board.now = func() time.Time { return clock }
	posts := []*models.Post{{ID: 1, Title: "A"}}

	for i := 0; i < 5000; i++ {
		id := fmt.Sprintf("browser-%d", i)
		require.True(t, board.Apply(id, board.Begin(id), posts, nil))
	}
	assert.Len(t, board.clients, 5000)

	clock = clock.Add(board.ttl / 2)
	_, loaded := board.Current("browser-7")
	assert.True(t, loaded)

	clock = clock.Add(board.ttl/2 + sweepInterval)
	board.Begin("newcomer")

	assert.Len(t, board.clients, 2)
	_, loaded = board.Current("browser-7")
	assert.True(t, loaded, "recently used browser survives the sweep")
	_, loaded = board.Current("browser-8")
	assert.False(t, loaded)
	assert.False(t, board.Patch("browser-9", 1, func(p *models.Post) {}, nil))

	clock = clock.Add(board.ttl + time.Second)
	_, loaded = board.Current("browser-7")
	assert.False(t, loaded, "expired browser is gone even before a sweep")
	assert.NotContains(t, board.clients, "browser-7")
}
