package goquery_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/cardmark"
	"github.com/fwojciec/cardmark/goquery"
	"github.com/fwojciec/cardmark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedStrategy(name string) *mock.Strategy {
	return &mock.Strategy{
		NameFn: func() string { return name },
		ExtractFn: func(html string, domain string) cardmark.ExtractResult {
			return cardmark.ExtractResult{Title: name}
		},
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("returns default strategy when nothing is registered", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(namedStrategy("default"))

		got := registry.Resolve("example.com")

		require.NotNil(t, got)
		assert.Equal(t, "default", got.Name())
	})

	t.Run("returns default strategy for unmatched domains", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(namedStrategy("default"))
		registry.Register(cardmark.HostContains("news.ycombinator.com"), namedStrategy("hackernews"))
		registry.Register(cardmark.HostContains("youtube.com"), namedStrategy("youtube"))

		for _, domain := range []string{"example.com", "ycombinator.com", "", "youtu.be"} {
			assert.Equal(t, "default", registry.Resolve(domain).Name(), "domain %q", domain)
		}
	})

	t.Run("returns matching strategy", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(namedStrategy("default"))
		registry.Register(cardmark.HostContains("news.ycombinator.com"), namedStrategy("hackernews"))
		registry.Register(cardmark.HostContains("youtube.com"), namedStrategy("youtube"))

		assert.Equal(t, "hackernews", registry.Resolve("news.ycombinator.com").Name())
		assert.Equal(t, "youtube", registry.Resolve("www.youtube.com").Name())
	})

	t.Run("earlier registration wins when matchers overlap", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(namedStrategy("default"))
		registry.Register(cardmark.HostContains("ycombinator.com"), namedStrategy("first"))
		registry.Register(cardmark.HostContains("news.ycombinator.com"), namedStrategy("second"))

		assert.Equal(t, "first", registry.Resolve("news.ycombinator.com").Name())
	})

	t.Run("is safe for concurrent reads", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(namedStrategy("default"))
		registry.Register(cardmark.HostSuffix("github.com"), namedStrategy("github"))

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, "github", registry.Resolve("gist.github.com").Name())
			}()
		}
		wg.Wait()
	})
}

func TestRegistry_Entries(t *testing.T) {
	t.Parallel()

	t.Run("lists registrations in order", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(namedStrategy("default"))
		registry.Register(cardmark.HostContains("b.example"), namedStrategy("b"))
		registry.Register(cardmark.HostContains("a.example"), namedStrategy("a"))

		entries := registry.Entries()

		require.Len(t, entries, 2)
		assert.Equal(t, "b", entries[0].Strategy.Name())
		assert.Equal(t, "a", entries[1].Strategy.Name())
		assert.Equal(t, "*a.example*", entries[1].Matcher.String())
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(namedStrategy("default"))
		registry.Register(cardmark.HostContains("a.example"), namedStrategy("a"))

		entries := registry.Entries()
		entries[0].Strategy = namedStrategy("mutated")

		assert.Equal(t, "a", registry.Resolve("a.example").Name())
	})
}

func TestNewSiteRegistry(t *testing.T) {
	t.Parallel()

	registry := goquery.NewSiteRegistry(&mock.Converter{})

	tests := []struct {
		domain string
		want   string
	}{
		{"news.ycombinator.com", "hackernews"},
		{"www.youtube.com", "youtube"},
		{"en.wikipedia.org", "wikipedia"},
		{"github.com", "github"},
		{"old.reddit.com", "reddit"},
		{"stackoverflow.com", "stackoverflow"},
		{"example.com", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, registry.Resolve(tt.domain).Name())
		})
	}
}
