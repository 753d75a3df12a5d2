package definition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultURLTemplate is the Larousse French dictionary lookup URL. The
// escaped word replaces the %s verb.
const DefaultURLTemplate = "https://www.larousse.fr/dictionnaires/francais/%s/"

// ErrBodyTooLarge is returned when a dictionary page exceeds MaxBodySize
var ErrBodyTooLarge = errors.New("dictionary page exceeds maximum size")

// ErrUnexpectedStatus is returned when the dictionary answers with a
// non-2xx status code.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// FetcherOptions configures the markup fetcher
type FetcherOptions struct {
	URLTemplate string        // Lookup URL with a single %s for the word
	Timeout     time.Duration // Per request timeout
	UserAgent   string        // Sent with every request when set
	MaxBodySize int64         // Upper bound for the page size (0 = no limit)

	// Consecutive transport failures before lookups start failing fast.
	// Zero disables the circuit breaker.
	BreakerThreshold uint32
	// How long the breaker stays open before one probe request is let through.
	BreakerTimeout time.Duration
}

// DefaultFetcherOptions returns sensible defaults
func DefaultFetcherOptions() *FetcherOptions {
	return &FetcherOptions{
		URLTemplate:      DefaultURLTemplate,
		Timeout:          15 * time.Second,
		UserAgent:        "vocabbuilder",
		MaxBodySize:      5 * 1024 * 1024,
		BreakerThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// Fetcher retrieves raw dictionary pages over HTTP
type Fetcher struct {
	options *FetcherOptions
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewFetcher creates a new markup fetcher
func NewFetcher(options *FetcherOptions) *Fetcher {
	if options == nil {
		options = DefaultFetcherOptions()
	}
	if options.URLTemplate == "" {
		options.URLTemplate = DefaultURLTemplate
	}

	f := &Fetcher{
		options: options,
		client:  &http.Client{Timeout: options.Timeout},
	}

	if options.BreakerThreshold > 0 {
		threshold := options.BreakerThreshold
		f.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "dictionary",
			MaxRequests: 1,
			Timeout:     options.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			// A page with an error status is an answer, not an outage, and a
			// cancelled run says nothing about the dictionary
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, ErrUnexpectedStatus) ||
					errors.Is(err, ErrBodyTooLarge) ||
					errors.Is(err, context.Canceled)
			},
		})
	}

	return f
}

// LookupURL returns the dictionary URL for a word
func (f *Fetcher) LookupURL(word string) string {
	return fmt.Sprintf(f.options.URLTemplate, url.PathEscape(word))
}

// Fetch downloads the dictionary page for a word. There is no retry: a
// failed request is reported to the caller once.
func (f *Fetcher) Fetch(ctx context.Context, word string) ([]byte, error) {
	if f.breaker == nil {
		return f.fetch(ctx, word)
	}

	body, err := f.breaker.Execute(func() (interface{}, error) {
		return f.fetch(ctx, word)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("dictionary unavailable, skipping '%s': %w", word, err)
		}
		return nil, err
	}

	return body.([]byte), nil
}

func (f *Fetcher) fetch(ctx context.Context, word string) ([]byte, error) {
	lookupURL := f.LookupURL(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.options.UserAgent != "" {
		req.Header.Set("User-Agent", f.options.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", lookupURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, lookupURL)
	}

	var reader io.Reader = resp.Body
	if f.options.MaxBodySize > 0 {
		// One extra byte tells a page of exactly MaxBodySize from a larger one
		reader = io.LimitReader(resp.Body, f.options.MaxBodySize+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", lookupURL, err)
	}

	if f.options.MaxBodySize > 0 && int64(len(body)) > f.options.MaxBodySize {
		return nil, fmt.Errorf("%w of %d bytes: %s", ErrBodyTooLarge, f.options.MaxBodySize, lookupURL)
	}

	return body, nil
}
