// Package id generates Stripe-style prefixed short identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for entity types
const (
	PrefixUser         = "usr"
	PrefixTenant       = "tnt"
	PrefixPartner      = "prt"
	PrefixRole         = "rol"
	PrefixPlan         = "pln"
	PrefixSubscription = "sub"
	PrefixInvoice      = "inv"
	PrefixPayment      = "pay"
)

// Generate creates a random short ID with the specified length using Base62
// encoding. The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed short ID, e.g. "sub_8f3KpQ2mXv1L".
func GenerateWithPrefix(prefix string) (string, error) {
	body, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + body, nil
}

// MustGenerateWithPrefix is GenerateWithPrefix that panics on entropy failure.
// crypto/rand only fails when the OS entropy source is broken.
func MustGenerateWithPrefix(prefix string) string {
	sid, err := GenerateWithPrefix(prefix)
	if err != nil {
		panic(fmt.Sprintf("id: %v", err))
	}
	return sid
}

// HasPrefix reports whether sid carries the given entity prefix.
func HasPrefix(sid, prefix string) bool {
	return strings.HasPrefix(sid, prefix+"_")
}

// Slug generates a URL-safe lowercase slug of the given length,
// used for partner slugs and referral codes.
func Slug(length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return strings.ToLower(s), nil
}
