// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/study-planner/internal/catalog"
	"github.com/pdiddy/study-planner/internal/fetch"
	"github.com/pdiddy/study-planner/internal/history"
	"github.com/pdiddy/study-planner/internal/httputil"
	"github.com/pdiddy/study-planner/internal/metrics"
	"github.com/pdiddy/study-planner/internal/prompt"
	"github.com/pdiddy/study-planner/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download [SUBJECT] [GRADE] [TITLE]",
	Short: "Download one chapter of a textbook",
	Long: `Download resolves SUBJECT and GRADE to the catalog's books, picks the
book whose title matches TITLE (ignoring case, spaces, hyphens and
underscores) and saves the requested chapter as
<title>-<chapter>.pdf in --path.

SUBJECT accepts either the short name (math, social-science) or the
catalog label (Mathematics). --path may also be s3://bucket/prefix.`,
	Args: cobra.MaximumNArgs(3),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringP("path", "p", ".", "directory (or s3://bucket/prefix) to save the chapter in")
	downloadCmd.Flags().IntP("chapter", "c", 0, "chapter number (asked for when omitted)")

	rootCmd.AddCommand(downloadCmd)
}

// downloadRequest holds what the command line supplied; empty fields are
// asked for.
type downloadRequest struct {
	Subject string
	Grade   string
	Title   string
	Chapter int
}

// selection is a fully resolved download target.
type selection struct {
	Subject types.Subject
	Grade   types.Grade
	Book    types.Book
	Chapter int
}

func runDownload(cmd *cobra.Command, args []string) error {
	var req downloadRequest
	if len(args) > 0 {
		req.Subject = args[0]
	}
	if len(args) > 1 {
		req.Grade = args[1]
	}
	if len(args) > 2 {
		req.Title = args[2]
	}
	req.Chapter, _ = cmd.Flags().GetInt("chapter")
	if cmd.Flags().Changed("chapter") {
		if err := fetch.ValidateChapter(req.Chapter); err != nil {
			return err
		}
	}
	dest, _ := cmd.Flags().GetString("path")

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	cfg.Fetch.Destination = dest

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	p := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())
	sel, err := resolveSelection(cat, p, req, recorder)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := downloadSelection(ctx, cfg, sel, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		recordHistory(ctx, cfg.History, sel, res)
	}
	return nil
}

// resolveSelection turns the request into a selection, prompting for
// anything missing. It never touches the network.
func resolveSelection(cat *types.Catalog, p *prompt.Prompter, req downloadRequest, rec *metrics.Recorder) (selection, error) {
	var (
		sel selection
		err error
	)

	if req.Subject != "" {
		sel.Subject, err = catalog.ParseSubject(req.Subject)
	} else {
		sel.Subject, err = prompt.Parse(p, "Enter subject", catalog.ParseSubject)
	}
	if err != nil {
		return sel, err
	}

	if req.Grade != "" {
		sel.Grade, err = catalog.ParseGrade(req.Grade)
	} else {
		sel.Grade, err = prompt.Parse(p, "Enter grade", catalog.ParseGrade)
	}
	if err != nil {
		return sel, err
	}

	books, err := catalog.BooksFor(cat, sel.Subject, sel.Grade)
	if err != nil {
		rec.ObserveResolve(resolveOutcome(err))
		return sel, err
	}

	sel.Chapter = req.Chapter
	if sel.Chapter == 0 {
		sel.Chapter, err = prompt.Parse(p, "Enter chapter number", parseChapter)
		if err != nil {
			return sel, err
		}
	} else if err := fetch.ValidateChapter(sel.Chapter); err != nil {
		return sel, err
	}

	if req.Title != "" {
		sel.Book, err = catalog.FindByTitle(books, req.Title)
		if err != nil {
			rec.ObserveResolve(resolveOutcome(err))
			return sel, err
		}
	} else {
		titles := make([]string, len(books))
		for i, b := range books {
			titles[i] = b.Title
		}
		idx, err := p.Choose("Select a book", titles)
		if err != nil {
			return sel, err
		}
		sel.Book = books[idx]
	}

	rec.ObserveResolve(metrics.ResolveSuccess)
	return sel, nil
}

func parseChapter(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid chapter %q", s)
	}
	return n, fetch.ValidateChapter(n)
}

func resolveOutcome(err error) string {
	switch {
	case errors.Is(err, catalog.ErrUnsupportedGrade):
		return metrics.ResolveUnsupportedGrade
	case errors.Is(err, catalog.ErrBookNotFound):
		return metrics.ResolveBookNotFound
	case errors.Is(err, catalog.ErrTitleNotFound):
		return metrics.ResolveTitleNotFound
	default:
		return "error"
	}
}

// downloadSelection fetches the selected chapter into cfg.Fetch.Destination.
func downloadSelection(ctx context.Context, cfg types.AppConfig, sel selection, w io.Writer) (fetch.Result, error) {
	sink, err := fetch.OpenSink(ctx, cfg.Fetch.Destination)
	if err != nil {
		return fetch.Result{}, err
	}

	f := fetch.New(
		httputil.NewClient(cfg.Fetch.HTTPConfig),
		cfg.Fetch,
		sink,
		fetch.WithLogger(slog.Default()),
		fetch.WithObserver(recorder),
	)

	fmt.Fprintf(w, "downloading: %s chapter %d (%s, grade %d)\n", sel.Book.Title, sel.Chapter, sel.Subject, int(sel.Grade))
	res, err := f.Fetch(ctx, sel.Book, sel.Chapter)
	if err != nil {
		return res, err
	}
	fmt.Fprintf(w, "saved:       %s (%d bytes)\n", res.Location, res.Bytes)
	return res, nil
}

// recordHistory appends the download to the ledger. A ledger failure does
// not fail the download.
func recordHistory(ctx context.Context, cfg types.HistoryConfig, sel selection, res fetch.Result) {
	store, err := history.Open(cfg)
	if err != nil {
		slog.Warn("history unavailable", "error", err)
		return
	}
	defer store.Close()

	_, err = store.Record(ctx, history.Entry{
		Subject:  sel.Subject,
		Grade:    sel.Grade,
		Title:    sel.Book.Title,
		Chapter:  sel.Chapter,
		URL:      res.URL,
		Location: res.Location,
		Bytes:    res.Bytes,
	})
	if err != nil {
		slog.Warn("recording history failed", "error", err)
	}
}
