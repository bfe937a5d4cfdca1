package core

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"

	"github.com/mdobak/go-xerrors"
)

const (
	slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	slugSuffixLength   = 6
	maxSlugAttempts    = 3
)

// Slugify lowercases title and joins its letter/digit runs with single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r == '\'' || r == '"':
			// "don't" -> "dont"
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	if b.Len() == 0 {
		return "article"
	}
	return b.String()
}

func (c *Core) buildSlug(title string) (string, error) {
	suffix, err := c.slugSuffix()
	if err != nil {
		return "", err
	}
	return Slugify(title) + "-" + suffix, nil
}

func randomSlugSuffix() (string, error) {
	alphabetSize := big.NewInt(int64(len(slugSuffixAlphabet)))
	suffix := make([]byte, slugSuffixLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", xerrors.New(err)
		}
		suffix[i] = slugSuffixAlphabet[n.Int64()]
	}
	return string(suffix), nil
}
