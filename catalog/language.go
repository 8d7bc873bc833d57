package catalog

// Language is a supported output language code.
type Language string

const (
	Turkish    Language = "tr"
	English    Language = "en"
	Indonesian Language = "id"
	// Unknown stands in for any code without its own phrases.
	Unknown Language = ""
)

// DefaultLanguage is used when a request names no language.
const DefaultLanguage = Turkish

// OpeningLine heads every rendered reading regardless of language.
const OpeningLine = "Fincandan görülenler"

// Phrases are the fixed, language-specific lines of a reading.
type Phrases struct {
	Closing  string
	Fallback string
}

var phrases = map[Language]Phrases{
	Turkish: {
		Closing:  "Özetle: Haberler yeni kapılar açıyor; sezgin yolunu aydınlatıyor.",
		Fallback: "Fincanda net figür az; yine de iç sesinle ilerle.",
	},
	English: {
		Closing:  "In short: news opens doors; your intuition lights the way.",
		Fallback: "Few clear figures; follow your inner voice.",
	},
	Indonesian: {
		Closing:  "Singkatnya: kabar membuka pintu; intuisi Anda menerangi langkah.",
		Fallback: "Figur jelas sedikit; ikuti suara hati.",
	},
	Unknown: {
		Closing:  "In short...",
		Fallback: "Fallback.",
	},
}

// ParseLanguage maps a request language code onto a known Language, or
// Unknown when the code has no phrases. Codes are matched exactly.
func ParseLanguage(code string) Language {
	l := Language(code)
	if l == Unknown {
		return Unknown
	}
	if _, ok := phrases[l]; ok {
		return l
	}
	return Unknown
}

// PhrasesFor returns the fixed lines for code, using the Unknown entry for
// unrecognized codes.
func PhrasesFor(code string) Phrases {
	return phrases[ParseLanguage(code)]
}

// ClosingLine returns the closing line for the language code.
func ClosingLine(code string) string {
	return PhrasesFor(code).Closing
}

// FallbackText returns the text handed out after every attempt is rejected.
func FallbackText(code string) string {
	return PhrasesFor(code).Fallback
}

// UnresolvedFragment stands in for a symbol missing from the catalog.
func UnresolvedFragment(symbol string) string {
	return symbol + " — bir işaret belirdi."
}
