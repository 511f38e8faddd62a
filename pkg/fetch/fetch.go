// Package fetch downloads resolved package archives to a local directory.
//
// The pass is idempotent: each package maps to one deterministic file name
// under the destination directory, and an existing file is skipped without
// any network traffic. Downloads happen strictly in the order the packages
// were discovered; there is no parallelism and no retry, so a failed run
// can simply be restarted and will pick up where it left off.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nupull/nupull/pkg/resolve"
)

// Downloader streams package archives into a destination directory.
type Downloader struct {
	dir    string
	client *http.Client
	log    func(format string, args ...any)
}

// NewDownloader creates a Downloader writing into dir. A nil client falls
// back to a plain [http.Client] with no timeout, since archive sizes vary
// too much for a fixed deadline; cancellation comes from the context. A nil
// logger discards progress lines.
func NewDownloader(dir string, client *http.Client, logger func(format string, args ...any)) *Downloader {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = func(string, ...any) {}
	}
	return &Downloader{dir: dir, client: client, log: logger}
}

// Run downloads every package in pkgs, in the given order, skipping
// archives already present on disk. The context is consulted before each
// package; an in-flight transfer is never interrupted between checkpoints
// apart from the context's own effect on the HTTP request. The first
// transport failure aborts the run, leaving the directory partially
// populated but safe to re-run.
func (d *Downloader) Run(ctx context.Context, pkgs []*resolve.Package) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := pkg.ArchiveName()
		path := filepath.Join(d.dir, name)
		if _, err := os.Stat(path); err == nil {
			d.log("%s already downloaded.", name)
			continue
		}

		d.log("downloading %s %s", pkg.ID, pkg.Version)
		if err := d.download(ctx, pkg.DownloadURL, path); err != nil {
			return fmt.Errorf("download %s: %w", pkg.FullName(), err)
		}
	}
	return nil
}

// download streams url into path via a temp file in the same directory, so
// a failed transfer never leaves a partial archive at the path the
// idempotence check looks at.
func (d *Downloader) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp(d.dir, filepath.Base(path)+".*.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
