package downloader

import (
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"
)

func TestSummaryFromVideo(t *testing.T) {
	video := &youtube.Video{
		ID:          "abc123X",
		Title:       "Launch Day",
		Author:      "Acme",
		ChannelID:   "UCxyz",
		Duration:    125 * time.Second,
		PublishDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		Thumbnails: youtube.Thumbnails{
			{URL: "http://t/small.jpg", Width: 120, Height: 90},
			{URL: "http://t/large.jpg", Width: 1280, Height: 720},
			{URL: "http://t/medium.jpg", Width: 320, Height: 180},
		},
	}

	s := summaryFromVideo(video)

	if s.ID != "abc123X" || s.Title != "Launch Day" {
		t.Errorf("unexpected id/title: %q / %q", s.ID, s.Title)
	}
	if s.Duration == nil || *s.Duration != 125 {
		t.Errorf("expected duration 125, got %v", s.Duration)
	}
	if s.Thumbnail == nil || *s.Thumbnail != "http://t/large.jpg" {
		t.Errorf("expected largest thumbnail, got %v", s.Thumbnail)
	}
	if s.Uploader == nil || *s.Uploader != "Acme" {
		t.Errorf("expected uploader Acme, got %v", s.Uploader)
	}
	if s.ChannelID == nil || *s.ChannelID != "UCxyz" {
		t.Errorf("expected channel id UCxyz, got %v", s.ChannelID)
	}
	if s.ChannelURL == nil || *s.ChannelURL != "https://www.youtube.com/channel/UCxyz" {
		t.Errorf("unexpected channel url %v", s.ChannelURL)
	}
	if s.UploadDate == nil || *s.UploadDate != "20240309" {
		t.Errorf("expected upload date 20240309, got %v", s.UploadDate)
	}
	if s.WebpageURL != "https://www.youtube.com/watch?v=abc123X" {
		t.Errorf("unexpected webpage url %q", s.WebpageURL)
	}
}

func TestSummaryFromVideo_MissingFields(t *testing.T) {
	s := summaryFromVideo(&youtube.Video{ID: "abc123X"})

	if s.Duration != nil {
		t.Errorf("expected nil duration, got %v", *s.Duration)
	}
	if s.Thumbnail != nil || s.Uploader != nil || s.ChannelID != nil || s.ChannelURL != nil || s.UploadDate != nil {
		t.Errorf("expected optional fields to be nil, got %+v", s)
	}
}

func TestNewYtDlpMaterializer_DefaultFormat(t *testing.T) {
	if m := NewYtDlpMaterializer(""); m.format != DefaultFormat {
		t.Errorf("expected default format %q, got %q", DefaultFormat, m.format)
	}
	if m := NewYtDlpMaterializer("best"); m.format != "best" {
		t.Errorf("expected format 'best', got %q", m.format)
	}
}

func TestOutputPath(t *testing.T) {
	base := "/downloads/0123abcd"
	webm := base + ".webm"
	empty := ""

	tests := []struct {
		name     string
		reported *string
		expected string
	}{
		{"no report", nil, base + ".mp4"},
		{"empty report", &empty, base + ".mp4"},
		{"reported name", &webm, webm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(base, tt.reported); got != tt.expected {
				t.Errorf("outputPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}
