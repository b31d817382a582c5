// Package textdecode reads text whose encoding is not known up front by
// trying an ordered list of encodings until one decodes cleanly.
package textdecode

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrDecode is returned when no encoding in the list accepts the input.
var ErrDecode = errors.New("no encoding could decode the input")

// Encoding is a named strict decoder.
type Encoding struct {
	Name   string
	Decode func([]byte) (string, error)
}

var (
	// UTF8 accepts only valid UTF-8. A leading byte order mark is dropped.
	UTF8 = Encoding{Name: "utf-8", Decode: decodeUTF8}
	// UTF16 honours a byte order mark and assumes little-endian without one.
	UTF16 = Encoding{Name: "utf-16", Decode: decodeUTF16}
	// Latin1 maps every byte to a code point and never fails.
	Latin1 = Encoding{Name: "latin-1", Decode: decodeLatin1}
)

// Fallback is the sequence used for URL lists and persisted reports.
var Fallback = []Encoding{UTF8, UTF16, Latin1}

// TryDecode decodes data with the first encoding that succeeds and returns
// the text with the name of that encoding.
func TryDecode(data []byte, encodings []Encoding) (string, string, error) {
	for _, enc := range encodings {
		text, err := enc.Decode(data)
		if err == nil {
			return text, enc.Name, nil
		}
	}
	return "", "", ErrDecode
}

// ReadFile reads path and decodes it with TryDecode.
func ReadFile(path string, encodings []Encoding) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	text, name, err := TryDecode(data, encodings)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}
	return text, name, nil
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("invalid utf-8")
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeUTF16(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", errors.New("truncated utf-16 data")
	}
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	// The x/text decoder substitutes U+FFFD for unpaired surrogates instead
	// of failing.
	text := string(out)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", errors.New("invalid utf-16 surrogate")
	}
	return text, nil
}

func decodeLatin1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
