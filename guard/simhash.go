package guard

import (
	"encoding/binary"
	"math/bits"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const fingerprintBits = 64

// nonTokenChars matches everything that is not a token character. The class
// keeps the Turkish letters so words like "güneş" survive as single tokens.
var nonTokenChars = regexp.MustCompile(`(?i)[^a-z0-9ğüşöçıİĞÜŞÖÇ\s]`)

// Tokenize lower-cases text, blanks out punctuation and splits on whitespace.
func Tokenize(text string) []string {
	cleaned := nonTokenChars.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

// tokenHash returns the first 8 bytes of the token's BLAKE2b-512 digest.
func tokenHash(token string) uint64 {
	sum := blake2b.Sum512([]byte(token))
	return binary.BigEndian.Uint64(sum[:8])
}

// Fingerprint computes the 64-bit simhash of text. Text without tokens has
// every counter at zero and therefore every bit set.
func Fingerprint(text string) uint64 {
	var counters [fingerprintBits]int
	for _, tok := range Tokenize(text) {
		h := tokenHash(tok)
		for i := 0; i < fingerprintBits; i++ {
			if (h>>uint(i))&1 == 1 {
				counters[i]++
			} else {
				counters[i]--
			}
		}
	}

	var out uint64
	for i, c := range counters {
		if c >= 0 {
			out |= 1 << uint(i)
		}
	}
	return out
}

// HammingDistance counts differing bits between two fingerprints.
func HammingDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similarity maps Hamming distance onto [0,1], 1 meaning identical.
func Similarity(a, b uint64) float64 {
	return 1 - float64(HammingDistance(a, b))/fingerprintBits
}
