package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordchart/model"
	"github.com/stretchr/testify/assert"
)

func write(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAllRenumbersTunes(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.evt", "tune 1\ntitle \"One\"\ntune 2\ntitle \"Two\"\n")
	b := write(t, dir, "b.evt", "tune 1\ntitle \"Three\"\n")

	batch, err := LoadAll([]string{a, b})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.NewTune{Index: 3}, batch.Events[4])
	assert.Equal(map[int]string{1: a, 2: a, 3: b}, batch.Sources)
}

func TestLoadUnsupported(t *testing.T) {
	path := write(t, t.TempDir(), "tune.abc", "X:1\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadAllStopsOnError(t *testing.T) {
	dir := t.TempDir()
	good := write(t, dir, "good.evt", "tune 1\n")
	bad := write(t, dir, "bad.evt", "tune one\n")

	_, err := LoadAll([]string{good, bad})
	assert.Error(t, err)
}
