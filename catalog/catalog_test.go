package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const symbolsJSON = `{"symbols":[
  {"symbol":"cup","translations":{"tr":"Fincan TR","en":"Cup EN"}},
  {"symbol":"key","translations":{"tr":"Anahtar TR"}},
  {"symbol":"","translations":{"tr":"ignored"}}
]}`

const notesJSON = `{"symbols":[
  {"symbol":"cup","culture_notes":[
    {"note_tr":"global tr","note_en":"global en","note_id":"global id"},
    {"note_tr":"balkan tr","note_en":"balkan en","allow":["BA","RS"]}
  ]}
]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	return Load(
		writeFile(t, dir, "symbols.json", symbolsJSON),
		writeFile(t, dir, "notes.json", notesJSON),
		zap.NewNop(),
	)
}

func TestFragment(t *testing.T) {
	c := loadTestCatalog(t)

	tests := []struct {
		name   string
		symbol string
		lang   string
		want   string
		wantOK bool
	}{
		{"requested_language", "cup", "en", "Cup EN", true},
		{"falls_back_to_turkish", "key", "en", "Anahtar TR", true},
		{"unknown_language_falls_back", "cup", "xx", "Fincan TR", true},
		{"unknown_symbol", "sun", "en", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Fragment(tt.symbol, tt.lang)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, 2, c.Size())
}

func TestCultureNotesRegionFilter(t *testing.T) {
	c := loadTestCatalog(t)

	global := c.CultureNotes("cup", "GLOBAL")
	require.Len(t, global, 1)
	assert.Equal(t, "global en", global[0].Text("en"))
	assert.Equal(t, "global id", global[0].Text("id"))

	assert.Len(t, c.CultureNotes("cup", ""), 1, "empty region means GLOBAL")

	balkan := c.CultureNotes("cup", "BA")
	require.Len(t, balkan, 1)
	assert.Equal(t, "balkan tr", balkan[0].Text("tr"))
	assert.Empty(t, balkan[0].Text("id"))

	assert.Empty(t, c.CultureNotes("key", "GLOBAL"))
}

func TestLoadMissingFilesYieldsEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	c := Load(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope2.json"), zap.NewNop())

	_, ok := c.Fragment("cup", "tr")
	assert.False(t, ok)
	assert.Empty(t, c.CultureNotes("cup", "GLOBAL"))
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	_, err := loadSymbols(writeFile(t, dir, "bad.json", "{not json"))
	assert.Error(t, err)
}

func TestBundledDataLoads(t *testing.T) {
	c := Load("../data/symbols.json", "../data/culture_notes.json", zap.NewNop())

	got, ok := c.Fragment("cup", "en")
	require.True(t, ok)
	assert.Equal(t, "Cup: abundance and guests are coming to your home.", got)
	assert.NotEmpty(t, c.CultureNotes("moon", "TR"))
}
