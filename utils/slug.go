package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	slugMaxLen      = 120
	slugMaxAttempts = 10000
)

// GenerateSlug lowercases s and turns every run of characters outside
// [a-z0-9] into a single hyphen.
func GenerateSlug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > slugMaxLen {
		out = strings.Trim(out[:slugMaxLen], "-")
	}
	return out
}

// UniqueSlug derives a slug from title and appends -1, -2, ... until taken
// reports the candidate free. fallback is used when title has no usable
// characters.
func UniqueSlug(ctx context.Context, title, fallback string, taken func(ctx context.Context, candidate string) (bool, error)) (string, error) {
	base := GenerateSlug(title)
	if base == "" {
		base = GenerateSlug(fallback)
	}
	if base == "" {
		return "", errors.New("cannot derive slug from empty title")
	}

	candidate := base
	for i := 1; i <= slugMaxAttempts; i++ {
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
