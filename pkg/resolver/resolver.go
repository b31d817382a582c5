// Package resolver decides which URLs an audit run visits.
package resolver

import (
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/amosWeiskopf/onpage/pkg/textdecode"
	"github.com/amosWeiskopf/onpage/pkg/utils"
)

// Resolver picks the URL list from, in priority order, an explicit
// argument, a newline-delimited list file, or a default URL.
type Resolver struct {
	listFile   string
	defaultURL string
	encodings  []textdecode.Encoding
	logger     *zap.Logger
}

// New creates a Resolver reading listFile and falling back to defaultURL.
func New(listFile, defaultURL string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		listFile:   listFile,
		defaultURL: defaultURL,
		encodings:  textdecode.Fallback,
		logger:     logger,
	}
}

// Resolve returns a non-empty list of URLs, each starting with http:// or
// https://. args are the positional command-line arguments; only the first
// is considered.
func (r *Resolver) Resolve(args []string) []string {
	return normalize(r.candidates(args))
}

func (r *Resolver) candidates(args []string) []string {
	if len(args) > 0 {
		return []string{utils.StripNUL(args[0])}
	}

	if r.listFile != "" {
		urls, err := r.readList()
		switch {
		case err == nil && len(urls) > 0:
			r.logger.Info("Analyzing URLs from list file",
				zap.String("file", r.listFile),
				zap.Int("count", len(urls)))
			return urls
		case errors.Is(err, os.ErrNotExist):
			r.logger.Debug("URL list file not found", zap.String("file", r.listFile))
		case err != nil:
			r.logger.Warn("Failed to read URL list file",
				zap.String("file", r.listFile),
				zap.Error(err))
		default:
			r.logger.Warn("URL list file has no usable lines", zap.String("file", r.listFile))
		}
	}

	r.logger.Warn("Falling back to default URL", zap.String("url", r.defaultURL))
	return []string{r.defaultURL}
}

func (r *Resolver) readList() ([]string, error) {
	text, enc, err := textdecode.ReadFile(r.listFile, r.encodings)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Decoded URL list file", zap.String("file", r.listFile), zap.String("encoding", enc))
	return ParseList(text), nil
}

// ParseList extracts URLs from list file text. Lines are trimmed and
// NUL-stripped; blank lines and lines starting with '#' are skipped.
func ParseList(text string) []string {
	var urls []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(utils.StripNUL(raw))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}

func normalize(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, utils.EnsureScheme(u))
	}
	return out
}
