package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ShahinyanDav/chessnaptracker/app/chesscom"
	"github.com/ShahinyanDav/chessnaptracker/app/config"
	"github.com/ShahinyanDav/chessnaptracker/app/lichess"
	"github.com/ShahinyanDav/chessnaptracker/app/models"
	"github.com/ShahinyanDav/chessnaptracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the think-time queries over HTTP.
type Handler struct {
	sources map[string]GameSource
	log     *zap.SugaredLogger
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		sources: map[string]GameSource{
			SiteChessCom: chesscom.NewClient(cfg.UserAgent),
			SiteLichess:  lichess.NewClient(),
		},
		log: logger.New("http"),
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetThinkTime runs one fetch against the selected source.
// GET /thinktime/:site/:username?type=all|blitz|rapid&start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) GetThinkTime(c *gin.Context) {
	start := time.Now()
	const endpoint = "/thinktime"

	site := c.Param("site")
	username := strings.ToLower(c.Param("username"))
	if username == "" {
		recordMetrics(c, endpoint, http.StatusBadRequest, start)
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username"})
		return
	}
	src, ok := h.sources[site]
	if !ok {
		recordMetrics(c, endpoint, http.StatusBadRequest, start)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown site " + site})
		return
	}

	gameType, err := models.ParseGameType(c.DefaultQuery("type", string(models.GameTypeAll)))
	if err != nil {
		recordMetrics(c, endpoint, http.StatusBadRequest, start)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opts := models.FetchOptions{
		GameType:  gameType,
		StartDate: c.Query("start"),
		EndDate:   c.Query("end"),
	}
	if _, _, err := opts.Window(); err != nil {
		recordMetrics(c, endpoint, http.StatusBadRequest, start)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 25*time.Second)
	defer cancel()

	games, err := src.FetchGames(ctx, username, opts)
	if err != nil {
		if errors.Is(err, models.ErrNoGamesFound) {
			recordMetrics(c, endpoint, http.StatusNotFound, start)
			c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNoGamesFound.Error()})
			return
		}
		h.log.Errorw("fetch failed", "site", site, "username", username, "error", err)
		recordMetrics(c, endpoint, http.StatusInternalServerError, start)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	gamesFetched.WithLabelValues(site).Add(float64(len(games)))
	recordMetrics(c, endpoint, http.StatusOK, start)
	c.JSON(http.StatusOK, gin.H{
		"username": username,
		"site":     site,
		"count":    len(games),
		"games":    games,
	})
}
