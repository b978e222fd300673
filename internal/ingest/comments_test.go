package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadComments(t *testing.T) {
	req := require.New(t)
	got, err := ReadComments(strings.NewReader("  first comment \n\n\t\nsecond, with punctuation!\r\nthird"))
	req.NoError(err)
	req.Equal([]string{"first comment", "second, with punctuation!", "third"}, got)
}

func TestLoadComments_FilesAndGlobs(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	req.NoError(os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a1\na2\n"), 0o644))
	req.NoError(os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b1\n"), 0o644))
	req.NoError(os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored\n"), 0o644))

	got, err := loadComments([]string{filepath.Join(dir, "*")}, strings.NewReader(""))
	req.NoError(err)
	req.Equal([]string{"a1", "a2", "b1"}, got)

	got, err = loadComments([]string{filepath.Join(dir, "b.txt"), Stdin, filepath.Join(dir, "a.txt")}, strings.NewReader("from stdin\n"))
	req.NoError(err)
	req.Equal([]string{"b1", "from stdin", "a1", "a2"}, got)
}

func TestLoadComments_Errors(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	_, err := loadComments([]string{filepath.Join(dir, "missing.txt")}, nil)
	req.ErrorIs(err, os.ErrNotExist)

	req.NoError(os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x\n"), 0o644))
	_, err = loadComments([]string{filepath.Join(dir, "notes.md")}, nil)
	req.Error(err)

	_, err = loadComments(nil, nil)
	req.Error(err)
}
