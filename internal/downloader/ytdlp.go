package downloader

import (
	"context"
	"fmt"
	"log"

	"github.com/lrstanley/go-ytdlp"
)

// DefaultFormat asks for the best video and best audio, falling back to the
// best single file that already carries both.
const DefaultFormat = "bestvideo*+bestaudio/best"

// YtDlpMaterializer downloads media with the yt-dlp binary.
type YtDlpMaterializer struct {
	format string
}

func NewYtDlpMaterializer(format string) *YtDlpMaterializer {
	if format == "" {
		format = DefaultFormat
	}
	return &YtDlpMaterializer{format: format}
}

func (m *YtDlpMaterializer) Materialize(ctx context.Context, url, base string) (string, error) {
	dl := ytdlp.New().
		Format(m.format).
		MergeOutputFormat(Container).
		NoPlaylist().
		NoProgress().
		PrintJSON().
		Output(base + ".%(ext)s")

	result, err := dl.Run(ctx, url)
	if err != nil {
		return "", fmt.Errorf("yt-dlp download failed: %w", err)
	}

	var reported *string
	if info, err := result.GetExtractedInfo(); err == nil && len(info) > 0 {
		reported = info[0].Filename
	}
	return outputPath(base, reported), nil
}

// outputPath picks the file yt-dlp wrote for base. yt-dlp reports the name it
// chose before merging, which may still carry the source extension; the
// pipeline corrects that. Without a report the merged container is assumed.
func outputPath(base string, reported *string) string {
	if reported == nil || *reported == "" {
		return base + "." + Container
	}
	return *reported
}

// Install makes sure a usable yt-dlp binary is present, downloading one into
// the user cache when the system has none.
func (m *YtDlpMaterializer) Install(ctx context.Context) error {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	log.Printf("[DOWNLOAD] Using yt-dlp %s at %s", resolved.Version, resolved.Executable)
	return nil
}
