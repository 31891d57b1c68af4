// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads one chapter of a catalog book and stores it.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/study-planner/internal/httputil"
	"github.com/pdiddy/study-planner/pkg/types"
)

// Outcome labels passed to an Observer.
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeIOError      = "io_error"
)

// Observer receives one call per Fetch that reached the network.
type Observer interface {
	ObserveFetch(outcome string, bytes int, elapsed time.Duration)
}

// Result describes a stored chapter.
type Result struct {
	URL      string
	Location string
	Bytes    int
}

// Fetcher downloads chapters over HTTP and writes them to a Sink. It holds
// no state between calls.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	sink     Sink
	logger   *slog.Logger
	observer Observer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithObserver registers an outcome observer.
func WithObserver(o Observer) Option {
	return func(f *Fetcher) { f.observer = o }
}

// New returns a Fetcher. An empty cfg.BaseURL falls back to DefaultBaseURL;
// a nil client is built from cfg.HTTPConfig.
func New(client *http.Client, cfg types.FetchConfig, sink Sink, opts ...Option) *Fetcher {
	if client == nil {
		client = httputil.NewClient(cfg.HTTPConfig)
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	f := &Fetcher{
		client:  client,
		baseURL: base,
		sink:    sink,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the remote location Fetch would request.
func (f *Fetcher) URL(book types.Book, chapter int) string {
	return URL(f.baseURL, book, chapter)
}

// Fetch downloads one chapter of book and writes it to the sink. The whole
// body is read before anything is written, so a network failure never
// leaves a file behind.
func (f *Fetcher) Fetch(ctx context.Context, book types.Book, chapter int) (Result, error) {
	if err := ValidateChapter(chapter); err != nil {
		return Result{}, err
	}

	url := f.URL(book, chapter)
	name := FileName(book, chapter)
	f.logger.Info("fetching chapter", "url", url, "title", book.Title, "chapter", chapter)

	start := time.Now()
	body, err := httputil.Get(ctx, f.client, url)
	if err != nil {
		f.observe(OutcomeNetworkError, 0, start)
		ne := &NetworkError{URL: url, Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			ne.StatusCode = se.StatusCode
		}
		f.logger.Debug("fetch failed", "url", url, "error", err)
		return Result{}, ne
	}

	loc, err := f.sink.Write(ctx, name, body)
	if err != nil {
		f.observe(OutcomeIOError, len(body), start)
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			err = &IOError{Path: name, Err: err}
		}
		return Result{}, err
	}

	f.observe(OutcomeSuccess, len(body), start)
	f.logger.Info("chapter saved", "path", loc, "bytes", len(body))
	return Result{URL: url, Location: loc, Bytes: len(body)}, nil
}

func (f *Fetcher) observe(outcome string, n int, start time.Time) {
	if f.observer != nil {
		f.observer.ObserveFetch(outcome, n, time.Since(start))
	}
}
