package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/looter/internal/fetcher"
	"github.com/nao1215/looter/internal/filename"
)

// DefaultWorkers is the number of concurrent saves in SaveConcurrently.
const DefaultWorkers = 20

// Getter fetches the body of a URL.
// *fetcher.Client implements it.
type Getter interface {
	SendRequest(ctx context.Context, rawURL string) (*fetcher.Response, error)
}

// Downloader writes fetched files into a directory.
type Downloader struct {
	getter        Getter
	dir           string
	maxNameLength int
	workers       int
	suffix        func() string
	logger        *slog.Logger
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithDir sets the destination directory. It must already exist.
func WithDir(dir string) Option {
	return func(d *Downloader) {
		if dir != "" {
			d.dir = dir
		}
	}
}

// WithMaxNameLength caps derived file names.
func WithMaxNameLength(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.maxNameLength = n
		}
	}
}

// WithWorkers sets how many targets SaveConcurrently handles at once.
func WithWorkers(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithSuffixFunc replaces the random suffix generator.
func WithSuffixFunc(fn func() string) Option {
	return func(d *Downloader) {
		if fn != nil {
			d.suffix = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Downloader) {
		d.logger = logger
	}
}

// New returns a Downloader that saves into the current directory.
func New(getter Getter, opts ...Option) *Downloader {
	d := &Downloader{
		getter:        getter,
		dir:           ".",
		maxNameLength: filename.DefaultMaxLength,
		workers:       DefaultWorkers,
		suffix:        filename.RandomSuffix,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Save downloads target and returns the path it was written to.
// With randomName a random suffix is spliced in before the extension.
func (d *Downloader) Save(ctx context.Context, target filename.Target, randomName bool) (string, error) {
	link, err := filename.Resolve(target, d.maxNameLength)
	if err != nil {
		return "", fmt.Errorf("resolve file name: %w", err)
	}

	name := link.Name
	if randomName {
		name = filename.WithRandomSuffix(name, d.suffix())
	}
	// Decoded names may contain separators; only the final element is used.
	name = filepath.Base(filepath.FromSlash(name))

	src := link.URL
	if strings.HasPrefix(src, "//") {
		src = fetcher.EnsureScheme(src)
	}

	start := time.Now()
	resp, err := d.getter.SendRequest(ctx, src)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", src, err)
	}

	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, resp.Body, 0o644); err != nil { //nolint:gosec // saved files are meant to be readable
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	d.logger.Info("saved",
		"file", path,
		"size", humanize.Bytes(uint64(len(resp.Body))),
		"elapsed", time.Since(start),
	)
	return path, nil
}

// SaveAll saves targets one after another and stops at the first error.
// The returned paths cover the targets saved before the failure.
func (d *Downloader) SaveAll(ctx context.Context, targets []filename.Target, randomName bool) ([]string, error) {
	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path, err := d.Save(ctx, target, randomName)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveConcurrently saves targets on up to the configured number of
// goroutines. One failure does not stop the others: every target is
// attempted and all failures are joined into the returned error.
// paths[i] belongs to targets[i] and is empty when that target failed.
// Targets not yet started when ctx is cancelled fail with ctx.Err().
func (d *Downloader) SaveConcurrently(ctx context.Context, targets []filename.Target, randomName bool) ([]string, error) {
	d.logger.Debug("starting batch save",
		"total", len(targets),
		"workers", d.workers,
	)
	start := time.Now()

	paths := make([]string, len(targets))
	errs := make([]error, len(targets))

	var g errgroup.Group
	g.SetLimit(d.workers)
	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			path, err := d.Save(ctx, target, randomName)
			if err != nil {
				d.logger.Warn("save failed", "index", i, "error", err)
				errs[i] = err
				return nil
			}
			paths[i] = path
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // units record their own errors

	err := errors.Join(errs...)
	d.logger.Debug("batch save complete",
		"total", len(targets),
		"elapsed", time.Since(start),
		"failed", err != nil,
	)
	return paths, err
}
