package fetcher

import (
	"context"
	"time"
)

// PageFetcher defines the interface for downloading a single page
type PageFetcher interface {
	// Fetch downloads rawURL and returns the body decoded as UTF-8 text
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Options contains configuration for the fetcher
type Options struct {
	Timeout            time.Duration // Whole-request timeout
	UserAgent          string        // User agent string
	InsecureSkipVerify bool          // Skip TLS certificate verification
	MaxBodyBytes       int64         // Body size cap, 0 for the default
}
