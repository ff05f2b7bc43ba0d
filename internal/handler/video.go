package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artur/videohub/internal/apperr"
	"github.com/artur/videohub/internal/downloader"
)

// VideoService is the part of the download pipeline the video routes use.
type VideoService interface {
	Info(ctx context.Context, rawURL string, save bool) (*downloader.VideoSummary, error)
	Prepare(ctx context.Context, rawURL string) (*downloader.Download, error)
}

type VideoHandler struct {
	videos VideoService
}

func NewVideoHandler(videos VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

func (h *VideoHandler) Register(r gin.IRouter) {
	r.GET("/video_info", h.info)
	r.GET("/download", h.download)
}

func (h *VideoHandler) info(c *gin.Context) {
	url, ok := requireQuery(c, "url")
	if !ok {
		return
	}

	save := false
	if raw := c.Query("save"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, apperr.Input("save must be an integer"), http.StatusBadRequest)
			return
		}
		save = n != 0
	}

	summary, err := h.videos.Info(c.Request.Context(), url, save)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *VideoHandler) download(c *gin.Context) {
	url, ok := requireQuery(c, "url")
	if !ok {
		return
	}

	dl, err := h.videos.Prepare(c.Request.Context(), url)
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	defer dl.Close()

	c.Header("Content-Type", "video/mp4")
	c.Header("Content-Disposition", "attachment; filename="+dl.Filename)
	c.Status(http.StatusOK)

	n, err := dl.WriteTo(c.Writer)
	if err != nil {
		log.Printf("[HTTP] Stream of %s aborted after %d bytes: %v", dl.Filename, n, err)
		return
	}
	log.Printf("[HTTP] Streamed %s (%d bytes)", dl.Filename, n)
}
