package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "fal-engine/errors"

	"go.uber.org/zap"
)

// GlobalRegion is the wildcard region every unscoped culture note allows.
const GlobalRegion = "GLOBAL"

// Note is a culture note attached to a symbol, restricted to some regions.
type Note struct {
	texts map[Language]string
	allow []string
}

// NewNote builds a note from per-language texts. An empty allow list means
// the note is global.
func NewNote(texts map[Language]string, allow ...string) Note {
	if len(allow) == 0 {
		allow = []string{GlobalRegion}
	}
	return Note{texts: texts, allow: allow}
}

// Text returns the note in lang, or "" when it has no such translation.
func (n Note) Text(lang string) string {
	return n.texts[Language(lang)]
}

// Allows reports whether the note may be shown in region.
func (n Note) Allows(region string) bool {
	if region == "" {
		region = GlobalRegion
	}
	for _, r := range n.allow {
		if r == region {
			return true
		}
	}
	return false
}

// Catalog is the read-only symbol vocabulary: per-language translations and
// region-scoped culture notes.
type Catalog struct {
	translations map[string]map[string]string
	notes        map[string][]Note
}

// New creates a catalog from already-loaded data. The maps are not copied
// and must not be modified afterwards.
func New(translations map[string]map[string]string, notes map[string][]Note) *Catalog {
	if translations == nil {
		translations = map[string]map[string]string{}
	}
	if notes == nil {
		notes = map[string][]Note{}
	}
	return &Catalog{translations: translations, notes: notes}
}

// Fragment returns the symbol's rendering in lang, falling back to Turkish.
// ok is false when the symbol is not in the catalog.
func (c *Catalog) Fragment(symbol, lang string) (string, bool) {
	tr, ok := c.translations[symbol]
	if !ok {
		return "", false
	}
	if s := tr[lang]; s != "" {
		return s, true
	}
	return tr[string(DefaultLanguage)], true
}

// CultureNotes returns the symbol's notes allowed in region, in file order.
func (c *Catalog) CultureNotes(symbol, region string) []Note {
	var out []Note
	for _, n := range c.notes[symbol] {
		if n.Allows(region) {
			out = append(out, n)
		}
	}
	return out
}

// Size returns the number of symbols with translations.
func (c *Catalog) Size() int {
	return len(c.translations)
}

type symbolsFile struct {
	Symbols []struct {
		Symbol       string            `json:"symbol"`
		Translations map[string]string `json:"translations"`
	} `json:"symbols"`
}

type notesFile struct {
	Symbols []struct {
		Symbol       string `json:"symbol"`
		CultureNotes []struct {
			TR    string   `json:"note_tr"`
			EN    string   `json:"note_en"`
			ID    string   `json:"note_id"`
			Allow []string `json:"allow"`
		} `json:"culture_notes"`
	} `json:"symbols"`
}

// Load reads the symbol and culture-note files. A missing or unreadable file
// is logged and leaves that part of the catalog empty, so unknown symbols
// degrade to placeholders instead of failing startup.
func Load(symbolsPath, notesPath string, logger *zap.Logger) *Catalog {
	translations, err := loadSymbols(symbolsPath)
	if err != nil {
		logger.Warn("Symbol table unavailable, all symbols will render as placeholders",
			zap.String("path", symbolsPath), zap.Error(err))
	}

	notes, err := loadNotes(notesPath)
	if err != nil {
		logger.Warn("Culture notes unavailable", zap.String("path", notesPath), zap.Error(err))
	}

	c := New(translations, notes)
	logger.Info("Catalog loaded",
		zap.Int("symbols", len(c.translations)),
		zap.Int("symbols_with_notes", len(c.notes)))
	return c
}

func loadSymbols(path string) (map[string]map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrCatalogLoad, path, err)
	}

	var f symbolsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrCatalogLoad, path, err)
	}

	out := make(map[string]map[string]string, len(f.Symbols))
	for _, s := range f.Symbols {
		if s.Symbol == "" {
			continue
		}
		out[s.Symbol] = s.Translations
	}
	return out, nil
}

func loadNotes(path string) (map[string][]Note, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrCatalogLoad, path, err)
	}

	var f notesFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrCatalogLoad, path, err)
	}

	out := make(map[string][]Note)
	for _, s := range f.Symbols {
		for _, n := range s.CultureNotes {
			texts := map[Language]string{
				Turkish:    n.TR,
				English:    n.EN,
				Indonesian: n.ID,
			}
			out[s.Symbol] = append(out[s.Symbol], NewNote(texts, n.Allow...))
		}
	}
	return out, nil
}
