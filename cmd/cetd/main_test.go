package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	main "github.com/fwojciec/cetd/cmd/cetd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	m := main.NewMain()
	m.Stdin = strings.NewReader("")
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires a command", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout, "extract")
	})

	t.Run("prints help", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "--help")

		require.NoError(t, err)
		assert.Contains(t, stdout, "compare")
		assert.Contains(t, stdout, "history")
	})

	t.Run("rejects unknown engine", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "extract", "--engine", "boilerpipe", writePage(t))

		require.Error(t, err)
	})

	t.Run("extracts a local file", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "history.db")
		stdout, _, err := run(t, "--db", db, "extract", "--format", "text", writePage(t))

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "Council News "+zoningParagraph))
		assert.NotContains(t, stdout, "Section")
	})

	t.Run("explains a local file", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "explain", writePage(t))

		require.NoError(t, err)
		assert.Contains(t, stdout, "Threshold: 196.846")
		assert.Equal(t, "keep", rowFields(t, stdout, "article")[7])
	})

	t.Run("logs when verbose", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "--verbose", "extract", writePage(t))

		require.NoError(t, err)
		assert.Contains(t, stderr, "engine=density")
	})

	t.Run("saves, lists, shows and deletes extractions", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "history.db")
		page := writePage(t)

		_, stderr, err := run(t, "--db", db, "extract", "--save", page)
		require.NoError(t, err)
		match := regexp.MustCompile(`Saved extraction (\S+)`).FindStringSubmatch(stderr)
		require.Len(t, match, 2)
		id := match[1]

		stdout, _, err := run(t, "--db", db, "history")
		require.NoError(t, err)
		assert.Contains(t, stdout, id)
		assert.Contains(t, stdout, page)

		stdout, _, err = run(t, "--db", db, "show", id)
		require.NoError(t, err)
		assert.Contains(t, stdout, "title: Town Chronicle")
		assert.Contains(t, stdout, "# Council News")

		stdout, _, err = run(t, "--db", db, "delete", "--force", id)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Deleted extraction "+id)

		stdout, _, err = run(t, "--db", db, "history")
		require.NoError(t, err)
		assert.Contains(t, stdout, "No extractions found")
	})

	t.Run("creates the database directory", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "nested", "state", "history.db")

		stdout, _, err := run(t, "--db", db, "history")

		require.NoError(t, err)
		assert.Contains(t, stdout, "No extractions found")
		assert.FileExists(t, db)
	})
}
