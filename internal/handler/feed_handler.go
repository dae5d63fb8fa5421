package handler

import (
	"io"
	"net/http"
	"time"

	"gameverse/backend/internal/auth"
	"gameverse/backend/internal/hub"
	"gameverse/backend/internal/metrics"
	"gameverse/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	feedBuffer    = 16
	feedKeepAlive = 25 * time.Second
)

type FeedHandler struct {
	hub *hub.Hub
	log *logrus.Logger
}

func NewFeedHandler(h *hub.Hub, log *logrus.Logger) *FeedHandler {
	return &FeedHandler{hub: h, log: log}
}

// StreamPosts godoc
// @Summary      Live post feed
// @Description  Server-sent events for every post created, updated or deleted.
// @Tags         feed
// @Produce      text/event-stream
// @Success      200
// @Router       /feed/stream [get]
func (h *FeedHandler) StreamPosts(c *gin.Context) {
	h.stream(c, service.FeedTopicAll)
}

// StreamGamePosts godoc
// @Summary      Live post feed of one game
// @Description  Server-sent events for posts about the given game.
// @Tags         feed
// @Produce      text/event-stream
// @Param        id   path      string  true  "Game ID"
// @Success      200
// @Failure      400  {object}  ErrorResponse
// @Router       /games/{id}/feed/stream [get]
func (h *FeedHandler) StreamGamePosts(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.stream(c, service.GameFeedTopic(gameID))
}

func (h *FeedHandler) stream(c *gin.Context, topic string) {
	client := hub.NewClient(feedBuffer)
	h.hub.Subscribe(topic, client)
	metrics.FeedSubscribed()
	defer func() {
		h.hub.Unsubscribe(topic, client)
		metrics.FeedUnsubscribed()
	}()

	entry := h.log.WithField("topic", topic)
	if userID, ok := auth.UserID(c); ok {
		entry = entry.WithField("user_id", userID.String())
	}
	entry.Debug("feed subscriber connected")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	keepAlive := time.NewTicker(feedKeepAlive)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("post", string(msg))
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", "")
			return true
		}
	})

	entry.Debug("feed subscriber disconnected")
}
