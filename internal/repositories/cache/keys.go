package cache

import (
	"fmt"
	"sort"
	"strings"
)

type EntityType string

const (
	EntityUser         EntityType = "user"
	EntityProperty     EntityType = "property"
	EntityPropertyList EntityType = "properties"
)

type KeyType string

const (
	KeyID    KeyType = "id"
	KeyEmail KeyType = "email"
	KeyQuery KeyType = "query"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// GenerateCompositeKey creates a cache key with multiple components, in a
// stable order so identical queries share a key.
func GenerateCompositeKey(entity EntityType, components map[string]interface{}) string {
	names := make([]string, 0, len(components))
	for k := range components {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := []string{string(entity)}
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", k, components[k]))
	}
	return strings.Join(parts, ":")
}

// Pattern matches every key of an entity.
func Pattern(entity EntityType) string {
	return string(entity) + ":*"
}
