// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/study-planner/internal/httputil"
	"github.com/pdiddy/study-planner/pkg/types"
)

const fakePDFContent = "%PDF-1.4 fake"

var (
	science  = types.Book{Title: "Science", PDFCode: "jesc1"}
	politics = types.Book{Title: "Democratic Politics II", PDFCode: "jess4"}
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNaming(t *testing.T) {
	tests := []struct {
		name     string
		book     types.Book
		chapter  int
		wantCode string
		wantURL  string
		wantFile string
	}{
		{"single digit", science, 1, "jesc101", DefaultBaseURL + "jesc101.pdf", "science-01.pdf"},
		{"padded", science, 3, "jesc103", DefaultBaseURL + "jesc103.pdf", "science-03.pdf"},
		{"two digits", politics, 12, "jess412", DefaultBaseURL + "jess412.pdf", "democratic_politics_ii-12.pdf"},
		{"max chapter", politics, 99, "jess499", DefaultBaseURL + "jess499.pdf", "democratic_politics_ii-99.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ChapterCode(tt.book.PDFCode, tt.chapter))
			assert.Equal(t, tt.wantURL, URL(DefaultBaseURL, tt.book, tt.chapter))
			assert.Equal(t, tt.wantFile, FileName(tt.book, tt.chapter))

			// Same inputs, same outputs.
			assert.Equal(t, URL(DefaultBaseURL, tt.book, tt.chapter), URL(DefaultBaseURL, tt.book, tt.chapter))
			assert.Equal(t, FileName(tt.book, tt.chapter), FileName(tt.book, tt.chapter))
		})
	}
}

func TestNaming_ScienceNinthScenario(t *testing.T) {
	assert.Equal(t, "https://ncert.nic.in/textbook/pdf/jesc101.pdf", URL(DefaultBaseURL, science, 1))
	assert.Equal(t, "science-01.pdf", FileName(science, 1))
}

func TestValidateChapter(t *testing.T) {
	for _, ch := range []int{1, 9, 10, 99} {
		assert.NoError(t, ValidateChapter(ch), "chapter %d", ch)
	}
	for _, ch := range []int{-1, 0, 100, 255} {
		assert.ErrorIs(t, ValidateChapter(ch), ErrInvalidChapter, "chapter %d", ch)
	}
}

// newDocServer serves fakePDFContent under /textbook/pdf/ and counts hits.
func newDocServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/textbook/pdf/jesc101.pdf" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, fakePDFContent)
	}))
}

func newTestFetcher(ts *httptest.Server, dir string, opts ...Option) *Fetcher {
	cfg := types.FetchConfig{BaseURL: ts.URL + "/textbook/pdf"}
	opts = append([]Option{WithLogger(discardLogger)}, opts...)
	return New(ts.Client(), cfg, DirSink{Dir: dir}, opts...)
}

func TestFetch_WritesFile(t *testing.T) {
	var hits int32
	ts := newDocServer(t, &hits)
	defer ts.Close()

	dir := t.TempDir()
	f := newTestFetcher(ts, dir)

	res, err := f.Fetch(context.Background(), science, 1)
	require.NoError(t, err)

	want := filepath.Join(dir, "science-01.pdf")
	assert.Equal(t, want, res.Location)
	assert.Equal(t, ts.URL+"/textbook/pdf/jesc101.pdf", res.URL)
	assert.Equal(t, len(fakePDFContent), res.Bytes)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, fakePDFContent, string(data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetch_OverwritesExistingFile(t *testing.T) {
	var hits int32
	ts := newDocServer(t, &hits)
	defer ts.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "science-01.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("stale content that is longer than the new one"), 0o644))

	_, err := newTestFetcher(ts, dir).Fetch(context.Background(), science, 1)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, fakePDFContent, string(data))
}

func TestFetch_NonSuccessStatusIsNetworkError(t *testing.T) {
	var hits int32
	ts := newDocServer(t, &hits)
	defer ts.Close()

	dir := t.TempDir()
	missing := types.Book{Title: "Missing", PDFCode: "nope1"}
	_, err := newTestFetcher(ts, dir).Fetch(context.Background(), missing, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)

	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, http.StatusNotFound, ne.StatusCode)
	assert.Equal(t, ts.URL+"/textbook/pdf/nope104.pdf", ne.URL)

	_, statErr := os.Stat(filepath.Join(dir, "missing-04.pdf"))
	assert.True(t, os.IsNotExist(statErr), "no file may be written for a failed response")
}

func TestFetch_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "%PDF-1.4 partial")
		w.(http.Flusher).Flush()
		<-release
	}))
	defer ts.Close()
	defer close(release)

	dir := t.TempDir()
	client := httputil.NewClient(types.HTTPConfig{Timeout: 100 * time.Millisecond})
	f := New(client, types.FetchConfig{BaseURL: ts.URL + "/"}, DirSink{Dir: dir}, WithLogger(discardLogger))

	_, err := f.Fetch(context.Background(), science, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "a timed out download must not leave a file")
}

func TestFetch_MissingDirectoryIsIOError(t *testing.T) {
	var hits int32
	ts := newDocServer(t, &hits)
	defer ts.Close()

	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	_, err := newTestFetcher(ts, dir).Fetch(context.Background(), science, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, filepath.Join(dir, "science-01.pdf"), ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch_InvalidChapterMakesNoRequest(t *testing.T) {
	var hits int32
	ts := newDocServer(t, &hits)
	defer ts.Close()

	f := newTestFetcher(ts, t.TempDir())
	for _, ch := range []int{0, 100} {
		_, err := f.Fetch(context.Background(), science, ch)
		assert.ErrorIs(t, err, ErrInvalidChapter)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

type recordingObserver struct {
	outcomes []string
	bytes    []int
}

func (r *recordingObserver) ObserveFetch(outcome string, n int, _ time.Duration) {
	r.outcomes = append(r.outcomes, outcome)
	r.bytes = append(r.bytes, n)
}

func TestFetch_Observer(t *testing.T) {
	var hits int32
	ts := newDocServer(t, &hits)
	defer ts.Close()

	obs := &recordingObserver{}
	dir := t.TempDir()
	f := newTestFetcher(ts, dir, WithObserver(obs))

	_, err := f.Fetch(context.Background(), science, 1)
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), politics, 2)
	require.Error(t, err)

	bad := newTestFetcher(ts, filepath.Join(dir, "missing"), WithObserver(obs))
	_, err = bad.Fetch(context.Background(), science, 1)
	require.Error(t, err)

	assert.Equal(t, []string{OutcomeSuccess, OutcomeNetworkError, OutcomeIOError}, obs.outcomes)
	assert.Equal(t, []int{len(fakePDFContent), 0, len(fakePDFContent)}, obs.bytes)
}

func TestNew_Defaults(t *testing.T) {
	f := New(nil, types.FetchConfig{}, DirSink{Dir: "."})
	assert.Equal(t, DefaultBaseURL+"jesc101.pdf", f.URL(science, 1))
	assert.Equal(t, httputil.DefaultTimeout, f.client.Timeout)

	f = New(nil, types.FetchConfig{BaseURL: "https://mirror.example/pdf"}, DirSink{Dir: "."})
	assert.Equal(t, "https://mirror.example/pdf/jesc101.pdf", f.URL(science, 1))
}

type fakeS3 struct {
	bucket, key, contentType string
	body                     []byte
	err                      error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = *in.Bucket
	f.key = *in.Key
	f.contentType = *in.ContentType
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Write(t *testing.T) {
	fake := &fakeS3{}
	sink := S3Sink{Client: fake, Bucket: "books", Prefix: "grade9/science"}

	loc, err := sink.Write(context.Background(), "science-01.pdf", []byte(fakePDFContent))
	require.NoError(t, err)
	assert.Equal(t, "s3://books/grade9/science/science-01.pdf", loc)
	assert.Equal(t, "books", fake.bucket)
	assert.Equal(t, "grade9/science/science-01.pdf", fake.key)
	assert.Equal(t, "application/pdf", fake.contentType)
	assert.Equal(t, fakePDFContent, string(fake.body))
}

func TestS3Sink_WriteFailureIsIOError(t *testing.T) {
	sink := S3Sink{Client: &fakeS3{err: errors.New("access denied")}, Bucket: "books"}
	_, err := sink.Write(context.Background(), "science-01.pdf", []byte(fakePDFContent))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "s3://books/science-01.pdf", ioErr.Path)
}

func TestOpenSink(t *testing.T) {
	orig := newS3Client
	defer func() { newS3Client = orig }()
	fake := &fakeS3{}
	newS3Client = func(context.Context) (PutObjectAPI, error) { return fake, nil }

	s, err := OpenSink(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DirSink{Dir: "."}, s)

	s, err = OpenSink(context.Background(), "/tmp/books")
	require.NoError(t, err)
	assert.Equal(t, DirSink{Dir: "/tmp/books"}, s)

	s, err = OpenSink(context.Background(), "s3://books/ncert/")
	require.NoError(t, err)
	assert.Equal(t, S3Sink{Client: fake, Bucket: "books", Prefix: "ncert"}, s)

	_, err = OpenSink(context.Background(), "s3:///nobucket")
	assert.Error(t, err)
}
