package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artur/videohub/internal/apperr"
	"github.com/artur/videohub/internal/channels"
	"github.com/artur/videohub/internal/database/models"
)

type ChannelStore interface {
	List(ctx context.Context) ([]models.Channel, error)
}

type VideoLister interface {
	List(ctx context.Context, channelID, pageToken string, maxResults int64) (*channels.Page, error)
}

type ChannelHandler struct {
	store  ChannelStore
	lister VideoLister
}

func NewChannelHandler(store ChannelStore, lister VideoLister) *ChannelHandler {
	return &ChannelHandler{store: store, lister: lister}
}

func (h *ChannelHandler) Register(r gin.IRouter) {
	r.GET("/channels", h.list)
	r.GET("/channels/:channel_id/videos", h.videos)
}

type channelEntry struct {
	ChannelID    string    `json:"channel_id"`
	ChannelTitle *string   `json:"channel_title"`
	Thumbnail    *string   `json:"thumbnail"`
	SavedAt      time.Time `json:"saved_at"`
	LastUsedAt   time.Time `json:"last_used_at"`
}

type channelList struct {
	Channels []channelEntry `json:"channels"`
}

func (h *ChannelHandler) list(c *gin.Context) {
	saved, err := h.store.List(c.Request.Context())
	if err != nil {
		writeError(c, apperr.Internal("failed to list channels", err), http.StatusInternalServerError)
		return
	}

	resp := channelList{Channels: make([]channelEntry, 0, len(saved))}
	for _, ch := range saved {
		resp.Channels = append(resp.Channels, channelEntry{
			ChannelID:    ch.ID,
			ChannelTitle: ch.Title,
			Thumbnail:    ch.Thumbnail,
			SavedAt:      ch.SavedAt.UTC(),
			LastUsedAt:   ch.LastUsedAt.UTC(),
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChannelHandler) videos(c *gin.Context) {
	maxResults := int64(channels.DefaultMaxResults)
	if raw := c.Query("max_results"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(c, apperr.Input("max_results must be an integer"), http.StatusBadRequest)
			return
		}
		maxResults = n
	}

	page, err := h.lister.List(c.Request.Context(), c.Param("channel_id"), c.Query("page_token"), maxResults)
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, page)
}
