package utils

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultStem is used when a URL has neither a host nor a path.
const DefaultStem = "analisis_web"

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// TruncateText cuts text to at most maxChars characters and appends "..."
// when anything was cut. Characters are counted as code points.
func TruncateText(text string, maxChars int) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars]) + "..."
}

// StripNUL removes embedded NUL bytes, which show up when UTF-16 input is
// read as a single-byte encoding.
func StripNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// EnsureScheme prefixes https:// to URLs that start with neither http://
// nor https://.
func EnsureScheme(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

// FilenameStem derives the base file name used for a URL's persisted files.
// The lower-cased host is used when present, otherwise the sanitized path,
// otherwise DefaultStem. Dots and dashes become underscores.
func FilenameStem(rawURL string) string {
	rawURL = StripNUL(rawURL)

	var host, path string
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ToLower(u.Hostname())
		path = u.Path
	}

	stem := host
	if stem == "" {
		stem = strings.ReplaceAll(strings.Trim(path, "/"), "/", "_")
		stem = SanitizeFilename(stem)
	}
	if stem == "" {
		stem = DefaultStem
	}

	return strings.NewReplacer(".", "_", "-", "_").Replace(stem)
}

// SanitizeFilename removes invalid characters from a filename
func SanitizeFilename(filename string) string {
	// Replace invalid characters
	filename = invalidFilenameChars.ReplaceAllString(filename, "_")

	// Remove control characters
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, filename)

	// Limit length
	if len(cleaned) > 255 {
		cleaned = cleaned[:255]
		for !utf8.ValidString(cleaned) {
			cleaned = cleaned[:len(cleaned)-1]
		}
	}

	return cleaned
}
