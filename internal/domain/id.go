package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// IDKind tags the leading segment of a generated identifier.
type IDKind string

const (
	KindInstitution IDKind = "institution"
	KindProduct     IDKind = "product"
	KindRate        IDKind = "rate"
	KindIssuer      IDKind = "issuer"
	KindPlan        IDKind = "plan"
)

var idKinds = []IDKind{KindInstitution, KindProduct, KindRate, KindIssuer, KindPlan}

var (
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	nonWordChars    = regexp.MustCompile(`[^\w-]+`)
	repeatedHyphens = regexp.MustCompile(`--+`)
)

// GenerateID builds a deterministic, kind-prefixed slug from human-readable
// name parts. IDs are the public join key across historical snapshots, so the
// same inputs must always produce the same output. Degenerate names (for
// example an all-punctuation institution name) leave an empty remainder and
// are rejected rather than silently producing a useless ID.
func GenerateID(kind IDKind, parts ...string) (string, error) {
	segments := make([]string, 0, len(parts)+1)
	for _, part := range append([]string{string(kind)}, parts...) {
		if slug := slugify(part); slug != "" {
			segments = append(segments, slug)
		}
	}

	id := strings.Join(segments, ":")

	if !hasRecognizedKindPrefix(id) {
		return "", fmt.Errorf("generated ID %q must start with one of the prefixes: %s", id, joinKinds())
	}

	prefix := string(kind) + ":"
	if !strings.HasPrefix(id, prefix) || len(id) == len(prefix) {
		return "", fmt.Errorf("generated ID %q does not match expected prefix %q", id, kind)
	}

	return id, nil
}

// slugify applies the per-part normalization: lowercase, trim, angle brackets
// spelled out (strict downstream validators forbid them), whitespace runs to
// hyphens, non-word characters stripped, repeated hyphens collapsed.
func slugify(part string) string {
	slug := strings.ToLower(strings.TrimSpace(part))
	slug = strings.ReplaceAll(slug, "<", "less-than-")
	slug = strings.ReplaceAll(slug, ">", "greater-than-")
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = nonWordChars.ReplaceAllString(slug, "")
	slug = repeatedHyphens.ReplaceAllString(slug, "-")
	return slug
}

func hasRecognizedKindPrefix(id string) bool {
	for _, kind := range idKinds {
		if strings.HasPrefix(id, string(kind)) {
			return true
		}
	}
	return false
}

func joinKinds() string {
	names := make([]string, len(idKinds))
	for i, kind := range idKinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}
