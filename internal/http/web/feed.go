package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/content"
	"github.com/Nixie-Tech-LLC/naulin/internal/model"
)

// newsDateLayout is the display format the site uses for article dates.
const newsDateLayout = "January 2, 2006"

// GET /news.rss
func (w *WebController) newsFeed(ctx *gin.Context) {
	rctx, cancel := context.WithTimeout(ctx.Request.Context(), w.opts.RenderTimeout)
	defer cancel()

	r := content.NewNewsLoader(w.conn, w.opts.FetchTimeout).Load(rctx)
	if !r.State.Terminal() {
		ctx.Header("Retry-After", "5")
		ctx.String(http.StatusServiceUnavailable, "news not available yet")
		return
	}

	rss, err := NewsFeed(w.opts.SiteURL, content.DisplayArticles(r)).ToRss()
	if err != nil {
		log.Error().Err(err).Msg("[web] failed to encode news feed")
		ctx.String(http.StatusInternalServerError, "could not build feed")
		return
	}
	ctx.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

// NewsFeed builds the feed for the displayed articles. Article dates that are
// not in the site's display format are left out of pubDate.
func NewsFeed(siteURL string, articles []model.NewsArticle) *feeds.Feed {
	base := strings.TrimRight(siteURL, "/")
	feed := &feeds.Feed{
		Title:       SchoolName + " | Latest News",
		Link:        &feeds.Link{Href: base + "/#news"},
		Description: "Stay connected with the latest happenings, achievements, and announcements from our school.",
		Created:     time.Now(),
	}

	for _, a := range articles {
		item := &feeds.Item{
			Id:          fmt.Sprintf("%s/#news-%d", base, a.ID),
			Title:       a.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/#news-%d", base, a.ID)},
			Description: a.ShortDescription,
		}
		if a.Category != "" {
			item.Title = "[" + a.Category + "] " + a.Title
		}
		if t, err := time.Parse(newsDateLayout, a.Date); err == nil {
			item.Created = t
		}
		feed.Items = append(feed.Items, item)
	}
	return feed
}
