package nick

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

type fakeFinder struct {
	taken map[string]bool
	err   error
}

func (f fakeFinder) FindByNick(_ context.Context, nick string) (*repository.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.taken[nick] {
		return &repository.User{Nick: nick}, nil
	}
	return nil, repository.ErrNotFound
}

func TestLoadBannedWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banned.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comentario\nbad\n\n  ugly  \n"), 0o600))

	bw, err := LoadBannedWords(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bw.Len())
	assert.True(t, bw.Contains("xxbadxx"))
	assert.True(t, bw.Contains("ugly"))
	assert.False(t, bw.Contains("BAD"), "case-sensitive")
	assert.False(t, bw.Contains("# comentario"))
}

func TestLoadBannedWords_EmptyPathAndMissingFile(t *testing.T) {
	bw, err := LoadBannedWords("")
	require.NoError(t, err)
	assert.Equal(t, 0, bw.Len())
	assert.False(t, bw.Contains("anything"))

	_, err = LoadBannedWords(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	v := NewValidator(fakeFinder{taken: map[string]bool{"Test": true}}, NewBannedWords("bad"))
	ctx := context.Background()

	cases := map[string]bool{
		"Test":     false, // en uso
		"test":     true,  // sin normalización
		"notbadat": false, // subcadena prohibida
		"Bad":      true,
		"fresh":    true,
	}
	for in, want := range cases {
		got, err := v.Validate(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "nick %q", in)
	}
}

func TestValidate_StoreError(t *testing.T) {
	boom := errors.New("db down")
	v := NewValidator(fakeFinder{err: boom}, nil)
	_, err := v.Validate(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}
