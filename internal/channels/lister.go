// Package channels lists a channel's uploads through the YouTube Data API.
package channels

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/artur/videohub/internal/apperr"
)

const (
	// DefaultMaxResults is the page size used when the caller gives none.
	DefaultMaxResults = 20
	// RequestTimeout bounds each Data API call.
	RequestTimeout = 20 * time.Second
)

// Store receives the resolved channel after a successful listing.
type Store interface {
	Upsert(ctx context.Context, id string, title, thumbnail *string) error
}

// Summary identifies the listed channel.
type Summary struct {
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	Thumbnail *string `json:"thumbnail"`
}

// Video is one entry of the uploads listing.
type Video struct {
	VideoID      string  `json:"videoId"`
	Title        string  `json:"title"`
	Thumbnail    *string `json:"thumbnail"`
	PublishedAt  string  `json:"publishedAt"`
	ChannelTitle string  `json:"channelTitle"`
}

// Page is one page of a channel's uploads.
type Page struct {
	Channel       Summary `json:"channel"`
	Videos        []Video `json:"videos"`
	NextPageToken *string `json:"nextPageToken"`
}

// Lister resolves a channel's uploads playlist and pages through it.
type Lister struct {
	service *youtube.Service
	store   Store
	timeout time.Duration
}

// NewLister builds a Lister for apiKey. With an empty key the Lister is
// created but every List call fails with a configuration error.
func NewLister(ctx context.Context, apiKey string, store Store, opts ...option.ClientOption) (*Lister, error) {
	l := &Lister{store: store, timeout: RequestTimeout}
	if apiKey == "" {
		return l, nil
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube Data API client: %w", err)
	}
	l.service = service
	return l, nil
}

// Enabled reports whether an API credential was configured.
func (l *Lister) Enabled() bool {
	return l.service != nil
}

// List returns one page of channelID's uploads. pageToken and maxResults are
// passed to the API untouched.
func (l *Lister) List(ctx context.Context, channelID, pageToken string, maxResults int64) (*Page, error) {
	if !l.Enabled() {
		return nil, apperr.Config("Server missing YT_API_KEY env var for channel listing")
	}

	channel, err := l.resolveChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	summary := Summary{ID: channelID}
	var uploads string
	if channel.Snippet != nil {
		summary.Title = optional(channel.Snippet.Title)
		if channel.Snippet.Thumbnails != nil && channel.Snippet.Thumbnails.Default != nil {
			summary.Thumbnail = optional(channel.Snippet.Thumbnails.Default.Url)
		}
	}
	if channel.ContentDetails != nil && channel.ContentDetails.RelatedPlaylists != nil {
		uploads = channel.ContentDetails.RelatedPlaylists.Uploads
	}
	if uploads == "" {
		return nil, apperr.NotFound("Channel has no uploads playlist")
	}

	items, err := l.listUploads(ctx, uploads, pageToken, maxResults)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Channel:       summary,
		Videos:        make([]Video, 0, len(items.Items)),
		NextPageToken: optional(items.NextPageToken),
	}
	for _, item := range items.Items {
		page.Videos = append(page.Videos, videoFromItem(item))
	}

	if err := l.store.Upsert(ctx, channelID, summary.Title, summary.Thumbnail); err != nil {
		log.Printf("[CHANNELS] Failed to save channel %s: %v", channelID, err)
	}

	return page, nil
}

func (l *Lister) resolveChannel(ctx context.Context, channelID string) (*youtube.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	resp, err := l.service.Channels.List([]string{"contentDetails", "snippet"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError("channel lookup", err)
	}
	if len(resp.Items) == 0 {
		return nil, apperr.NotFound("Channel not found")
	}
	return resp.Items[0], nil
}

func (l *Lister) listUploads(ctx context.Context, playlistID, pageToken string, maxResults int64) (*youtube.PlaylistItemListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	resp, err := l.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(maxResults).
		PageToken(pageToken).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstreamError("uploads listing", err)
	}
	return resp, nil
}

func videoFromItem(item *youtube.PlaylistItem) Video {
	var v Video
	if item.ContentDetails != nil {
		v.VideoID = item.ContentDetails.VideoId
	}
	if sn := item.Snippet; sn != nil {
		v.Title = sn.Title
		v.PublishedAt = sn.PublishedAt
		v.ChannelTitle = sn.ChannelTitle
		v.Thumbnail = preferredThumbnail(sn.Thumbnails)
	}
	return v
}

// preferredThumbnail picks the medium variant, then the default one.
func preferredThumbnail(t *youtube.ThumbnailDetails) *string {
	if t == nil {
		return nil
	}
	if t.Medium != nil && t.Medium.Url != "" {
		return optional(t.Medium.Url)
	}
	if t.Default != nil {
		return optional(t.Default.Url)
	}
	return nil
}

// upstreamError forwards the API's status and body when it produced one.
func upstreamError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		body := gerr.Body
		if body == "" {
			body = gerr.Message
		}
		return apperr.Upstream(gerr.Code, body, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Upstream(http.StatusGatewayTimeout, op+" timed out", err)
	}
	return apperr.Upstream(http.StatusBadGateway, fmt.Sprintf("%s failed: %v", op, err), err)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
