package downloader

import "context"

// Container is the single output container every download is muxed to.
const Container = "mp4"

// VideoSummary is the metadata record produced for a single video.
// Pointer fields are nil when the extractor did not report a value.
type VideoSummary struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Duration   *int    `json:"duration"`
	Thumbnail  *string `json:"thumbnail"`
	Uploader   *string `json:"uploader"`
	ChannelID  *string `json:"channel_id"`
	ChannelURL *string `json:"channel_url"`
	UploadDate *string `json:"upload_date"`
	WebpageURL string  `json:"webpage_url"`
}

// Extractor resolves a canonical video URL into its metadata.
type Extractor interface {
	Extract(ctx context.Context, url string) (*VideoSummary, error)
}

// Materializer downloads the best combined video+audio stream for url into
// a file named base.<ext> and reports the path it wrote.
type Materializer interface {
	Materialize(ctx context.Context, url, base string) (reportedPath string, err error)
}

// ChannelStore receives channel sightings.
type ChannelStore interface {
	Upsert(ctx context.Context, id string, title, thumbnail *string) error
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
