package guard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"punctuation_becomes_space", "Cup: guests, news!", []string{"cup", "guests", "news"}},
		{"turkish_letters_kept", "Güneş ışığı çok öğretici", []string{"güneş", "ışığı", "çok", "öğretici"}},
		{"bullets_and_dashes_dropped", "• cup — bir işaret belirdi.", []string{"cup", "bir", "işaret", "belirdi"}},
		{"whitespace_runs", "  a\t\tb \n c ", []string{"a", "b", "c"}},
		{"digits_kept", "3 keys 42", []string{"3", "keys", "42"}},
		{"empty", "", nil},
		{"only_punctuation", "...;;;!!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	texts := []string{
		"",
		"Fincandan görülenler\n• Cup: abundance and guests are coming to your home.",
		"In short: news opens doors; your intuition lights the way.",
	}
	for _, text := range texts {
		assert.Equal(t, Fingerprint(text), Fingerprint(text))
	}
}

func TestFingerprintEmptyTextSetsEveryBit(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), Fingerprint(""))
	assert.Equal(t, uint64(math.MaxUint64), Fingerprint("  ... — "))
}

func TestFingerprintSingleTokenIsTokenHash(t *testing.T) {
	// One token: every counter is +1 or -1, so the fingerprint is the hash itself.
	assert.Equal(t, tokenHash("cup"), Fingerprint("cup"))
	assert.Equal(t, tokenHash("cup"), Fingerprint("CUP!"))
}

func TestFingerprintIgnoresTokenOrder(t *testing.T) {
	assert.Equal(t, Fingerprint("moon cup bird"), Fingerprint("bird, cup. moon"))
}

func TestSimilarityProperties(t *testing.T) {
	values := []uint64{0, math.MaxUint64, 0xAAAAAAAAAAAAAAAA, 0x0123456789ABCDEF, Fingerprint("cup moon")}

	for _, a := range values {
		assert.Equal(t, 1.0, Similarity(a, a))
		for _, b := range values {
			s := Similarity(a, b)
			assert.Equal(t, s, Similarity(b, a))
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestHammingDistance(t *testing.T) {
	assert.Equal(t, 0, HammingDistance(7, 7))
	assert.Equal(t, 64, HammingDistance(0, math.MaxUint64))
	assert.Equal(t, 2, HammingDistance(0b1010, 0b0110))
	assert.Equal(t, 0.0, Similarity(0, math.MaxUint64))
	assert.Equal(t, 1-2.0/64, Similarity(0b1010, 0b0110))
}
