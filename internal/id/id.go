// Package id generates opaque identifiers for things that never live in a table,
// such as access token ids.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	size     = 20
)

// Generate returns prefix, a hyphen and 20 lowercase alphanumerics,
// e.g. "tok-4f0k2m9q1x7c3v8b5n6z".
func Generate(prefix string) (string, error) {
	s, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + s, nil
}
