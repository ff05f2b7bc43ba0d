package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/artur/videohub/internal/apperr"
)

// ChunkSize is the size of each write when streaming a download.
const ChunkSize = 1024 * 1024

// CleanupHook is told about downloaded files that could not be removed.
type CleanupHook func(path string, err error)

// Pipeline turns a pasted link into metadata or a streamable media file.
type Pipeline struct {
	extractor    Extractor
	materializer Materializer
	channels     ChannelStore
	dir          string
	onCleanup    CleanupHook
}

func NewPipeline(extractor Extractor, materializer Materializer, channels ChannelStore, dir string) *Pipeline {
	return &Pipeline{
		extractor:    extractor,
		materializer: materializer,
		channels:     channels,
		dir:          dir,
	}
}

// OnCleanupError registers hook for files left behind after streaming.
func (p *Pipeline) OnCleanupError(hook CleanupHook) {
	p.onCleanup = hook
}

// Info extracts metadata for rawURL and, when save is set, records its channel.
func (p *Pipeline) Info(ctx context.Context, rawURL string, save bool) (*VideoSummary, error) {
	url := CleanURL(rawURL)

	summary, err := p.extractor.Extract(ctx, url)
	if err != nil {
		return nil, apperr.Upstream(0, fmt.Sprintf("Failed to extract: %v", err), err)
	}

	if save && summary.ChannelID != nil {
		if err := p.channels.Upsert(ctx, *summary.ChannelID, summary.Uploader, summary.Thumbnail); err != nil {
			return nil, apperr.Internal("failed to save channel", err)
		}
	}

	return summary, nil
}

type metadataResult struct {
	summary *VideoSummary
	err     error
}

func (r metadataResult) ok() bool { return r.err == nil && r.summary != nil }

func (p *Pipeline) fetchMetadata(ctx context.Context, url string) metadataResult {
	summary, err := p.extractor.Extract(ctx, url)
	return metadataResult{summary: summary, err: err}
}

// Prepare materializes the media behind rawURL and opens it for streaming.
// The caller owns the returned Download and must Close it.
func (p *Pipeline) Prepare(ctx context.Context, rawURL string) (*Download, error) {
	url := CleanURL(rawURL)

	title := ""
	meta := p.fetchMetadata(ctx, url)
	if meta.ok() {
		title = meta.summary.Title
		if meta.summary.ChannelID != nil {
			if err := p.channels.Upsert(ctx, *meta.summary.ChannelID, meta.summary.Uploader, meta.summary.Thumbnail); err != nil {
				log.Printf("[DOWNLOAD] Failed to save channel %s: %v", *meta.summary.ChannelID, err)
			}
		}
	} else {
		log.Printf("[DOWNLOAD] Metadata unavailable for %s, using generic name: %v", url, meta.err)
	}

	base := filepath.Join(p.dir, strings.ReplaceAll(uuid.NewString(), "-", ""))

	reported, err := p.materializer.Materialize(ctx, url, base)
	if err != nil {
		p.removePartial(base)
		return nil, apperr.Internal(err.Error(), err)
	}

	path := resolveOutputPath(reported)

	file, err := os.Open(path)
	if err != nil {
		p.removePartial(base)
		return nil, apperr.Internal("downloaded file is missing", err)
	}

	log.Printf("[DOWNLOAD] Materialized %s -> %s", url, path)

	return &Download{
		Filename:  FileName(title),
		Path:      path,
		file:      file,
		onCleanup: p.onCleanup,
	}, nil
}

// resolveOutputPath swaps a pre-merge extension for the container extension
// when the merged file is what actually exists on disk.
func resolveOutputPath(reported string) string {
	ext := filepath.Ext(reported)
	if ext == "."+Container {
		return reported
	}

	merged := strings.TrimSuffix(reported, ext) + "." + Container
	if _, err := os.Stat(merged); err == nil {
		return merged
	}
	return reported
}

// removePartial deletes whatever a failed materialization left under base.
func (p *Pipeline) removePartial(base string) {
	matches, err := filepath.Glob(base + ".*")
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[DOWNLOAD] Failed to remove partial file %s: %v", m, err)
		}
	}
}

// Download is a materialized media file owned by a single response.
// Close removes it from disk.
type Download struct {
	Filename string
	Path     string

	file      *os.File
	onCleanup CleanupHook
	closed    bool
}

// WriteTo streams the file to w in ChunkSize writes, flushing after each one
// when w supports it.
func (d *Download) WriteTo(w io.Writer) (int64, error) {
	flusher, _ := w.(interface{ Flush() })
	buf := make([]byte, ChunkSize)

	var written int64
	for {
		n, readErr := d.file.Read(buf)
		if n > 0 {
			m, err := w.Write(buf[:n])
			written += int64(m)
			if err != nil {
				return written, err
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

// Close releases and deletes the file. Deletion failures are logged and
// handed to the cleanup hook, never returned.
func (d *Download) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	d.file.Close()

	err := os.Remove(d.Path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	log.Printf("[DOWNLOAD] Failed to delete %s: %v", d.Path, err)
	if d.onCleanup != nil {
		d.onCleanup(d.Path, err)
	}
	return nil
}
