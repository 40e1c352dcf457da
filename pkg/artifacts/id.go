package artifacts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

// normalizeURL creates a canonical representation of a URL for consistent
// hashing: https scheme, lowercased host, sorted query, no fragment.
func normalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme == "http" {
		u.Scheme = "https"
	}
	u.Host = strings.ToLower(u.Host)

	if u.RawQuery != "" {
		params := u.Query()
		var keys []string
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sortedQuery := url.Values{}
		for _, k := range keys {
			for _, v := range params[k] {
				sortedQuery.Add(k, v)
			}
		}
		u.RawQuery = sortedQuery.Encode()
	}

	u.Fragment = ""

	return u.String(), nil
}

// getShortHash generates a short, stable hash from a normalized source.
func getShortHash(normalized string) string {
	hash := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hash[:6]) // 12-char hex string
}

var invalidFilenameChar = regexp.MustCompile(`[^a-zA-Z0-9\-_]+`)

// sanitizeSlug creates a filesystem-safe slug from a URL or file path.
func sanitizeSlug(source string) string {
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		// Local files and anything unparseable.
		safe := invalidFilenameChar.ReplaceAllString(source, "_")
		return strings.Trim(safe, "_")
	}

	hostPart := strings.ReplaceAll(u.Host, ".", "_")
	pathPart := strings.TrimPrefix(u.Path, "/")
	pathPart = invalidFilenameChar.ReplaceAllString(pathPart, "_")
	pathPart = strings.Trim(pathPart, "_")

	if pathPart == "" {
		return hostPart
	}
	return fmt.Sprintf("%s_%s", hostPart, pathPart)
}

// RunID derives a stable run identifier from a source URL or file path.
// The slug keeps the ID human-readable; the hash keeps it unique.
func RunID(source string) string {
	normalized := source
	if n, err := normalizeURL(source); err == nil && n != "" {
		normalized = n
	}
	slug := sanitizeSlug(source)
	if slug == "" {
		slug = "input"
	}
	return fmt.Sprintf("%s-%s", slug, getShortHash(normalized))
}

// GenerateBatchID creates a timestamp-first batch ID from the sources in a
// batch. Format: YYYY-MM-DDTHH-MM-{hash}. The hash is derived from the
// sorted source list, so the same batch re-run within a minute maps to the
// same ID.
func GenerateBatchID(sources []string) string {
	normalized := make([]string, len(sources))
	copy(normalized, sources)
	sort.Strings(normalized)

	h := sha256.New()
	for _, s := range normalized {
		h.Write([]byte(s))
		h.Write([]byte("\n"))
	}
	hashBytes := h.Sum(nil)
	shortHash := hex.EncodeToString(hashBytes[:6])

	timestamp := time.Now().Format("2006-01-02T15-04")

	return fmt.Sprintf("%s-%s", timestamp, shortHash)
}
