package cache

import (
	"errors"
	"fmt"
	"strings"

	"go-champ-stats/internal/interfaces"
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates a cache key for one stats query. Aliases and lanes are
// normalized so "Aurelion Sol"/"aurelionsol" land on the same key.
func (kb *KeyBuilderImpl) Build(domain, alias, lane, vs string) (string, error) {
	if domain == "" {
		return "", errors.New("domain cannot be empty")
	}

	alias = normalize(alias)
	if alias == "" {
		return "", errors.New("alias cannot be empty")
	}

	key := fmt.Sprintf("%s:%s:%s", domain, alias, normalize(lane))
	if vs = normalize(vs); vs != "" {
		key = fmt.Sprintf("%s:vs:%s", key, vs)
	}

	return key, nil
}

// normalize lowercases and strips whitespace and quote characters, matching
// the upstream site's alias convention.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\'', '.':
			return -1
		}
		return r
	}, s)
}
