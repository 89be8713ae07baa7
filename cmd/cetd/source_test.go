package main_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/cetd"
	main "github.com/fwojciec/cetd/cmd/cetd"
	"github.com/fwojciec/cetd/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   bool
	}{
		{"https://example.com/news", true},
		{"http://example.com", true},
		{"ftp://example.com/file", false},
		{"https://", false},
		{"pages/news.html", false},
		{"/tmp/news.html", false},
		{"-", false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, main.IsURL(tt.source))
		})
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("fetches URLs", func(t *testing.T) {
		t.Parallel()

		var fetched string
		loader := &main.Loader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetched = url
					return "<p>remote</p>", nil
				},
			},
		}

		html, location, err := loader.Load(context.Background(), "https://example.com/news")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/news", fetched)
		assert.Equal(t, "<p>remote</p>", html)
		assert.Equal(t, "https://example.com/news", location)
	})

	t.Run("returns fetch errors", func(t *testing.T) {
		t.Parallel()

		loader := &main.Loader{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", cetd.Errorf(cetd.ENOTFOUND, "HTTP 404")
				},
			},
		}

		_, _, err := loader.Load(context.Background(), "https://example.com/missing")

		assert.Equal(t, cetd.ENOTFOUND, cetd.ErrorCode(err))
	})

	t.Run("requires a fetcher for URLs", func(t *testing.T) {
		t.Parallel()

		_, _, err := (&main.Loader{}).Load(context.Background(), "https://example.com")

		assert.Equal(t, cetd.EINTERNAL, cetd.ErrorCode(err))
	})

	t.Run("reads stdin", func(t *testing.T) {
		t.Parallel()

		loader := &main.Loader{Stdin: strings.NewReader("<p>piped</p>")}

		html, location, err := loader.Load(context.Background(), main.StdinSource)

		require.NoError(t, err)
		assert.Equal(t, "<p>piped</p>", html)
		assert.Equal(t, "stdin", location)
	})

	t.Run("reads files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>local</p>"), 0644))

		html, location, err := (&main.Loader{}).Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, "<p>local</p>", html)
		assert.Equal(t, path, location)
	})

	t.Run("returns ENOTFOUND for missing files", func(t *testing.T) {
		t.Parallel()

		_, _, err := (&main.Loader{}).Load(context.Background(), filepath.Join(t.TempDir(), "missing.html"))

		assert.Equal(t, cetd.ENOTFOUND, cetd.ErrorCode(err))
	})

	t.Run("returns stdin read errors", func(t *testing.T) {
		t.Parallel()

		loader := &main.Loader{Stdin: failingReader{}}

		_, _, err := loader.Load(context.Background(), main.StdinSource)

		require.Error(t, err)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }
