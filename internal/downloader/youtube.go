package downloader

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kkdai/youtube/v2"
)

const channelURLPrefix = "https://www.youtube.com/channel/"

// YouTubeExtractor reads video metadata through kkdai/youtube.
type YouTubeExtractor struct {
	client *youtube.Client
}

func NewYouTubeExtractor(httpClient *http.Client) *YouTubeExtractor {
	return &YouTubeExtractor{
		client: &youtube.Client{HTTPClient: httpClient},
	}
}

func (e *YouTubeExtractor) Extract(ctx context.Context, url string) (*VideoSummary, error) {
	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	summary := summaryFromVideo(video)
	return &summary, nil
}

func summaryFromVideo(video *youtube.Video) VideoSummary {
	summary := VideoSummary{
		ID:         video.ID,
		Title:      video.Title,
		Thumbnail:  optional(bestThumbnailURL(video.Thumbnails)),
		Uploader:   optional(video.Author),
		ChannelID:  optional(video.ChannelID),
		WebpageURL: watchURLForID(video.ID),
	}

	if video.Duration > 0 {
		seconds := int(video.Duration.Seconds())
		summary.Duration = &seconds
	}
	if video.ChannelID != "" {
		summary.ChannelURL = optional(channelURLPrefix + video.ChannelID)
	}
	if !video.PublishDate.IsZero() {
		summary.UploadDate = optional(video.PublishDate.Format("20060102"))
	}

	return summary
}

func bestThumbnailURL(thumbnails youtube.Thumbnails) string {
	var best youtube.Thumbnail
	for _, t := range thumbnails {
		if t.URL == "" {
			continue
		}
		if best.URL == "" || t.Width*t.Height > best.Width*best.Height {
			best = t
		}
	}
	return best.URL
}
