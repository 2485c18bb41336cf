// Package web serves the public school page, its contact form and the news feed.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/contact"
	"github.com/Nixie-Tech-LLC/naulin/internal/content"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	// PendingRefresh is the meta-refresh interval, in seconds, while a section is pending.
	PendingRefresh = 3

	contactInvalidText = "Please enter your name, a valid email address and your message."
	contactFailedText  = "Your message could not be sent. Please try again."
)

// Templates parses the embedded page templates for gin's SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// Static serves the embedded stylesheet and icon sprite.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("[web] embedded static files missing")
	}
	return http.FS(sub)
}

type Options struct {
	// FetchTimeout bounds each provider read.
	FetchTimeout time.Duration
	// RenderTimeout bounds how long a page waits for its sections before rendering them as pending.
	RenderTimeout time.Duration
	// SiteURL is the absolute base used for feed links.
	SiteURL string
	Contact contact.Options
	Limiter *middleware.RateLimiter
}

type WebController struct {
	conn *provider.Connection
	opts Options
}

// WebModule mounts the page, the form post and the RSS feed.
func WebModule(conn *provider.Connection, opts Options) api.Module {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = content.DefaultFetchTimeout
	}
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = opts.FetchTimeout + time.Second
	}
	ctl := &WebController{conn: conn, opts: opts}
	return api.ModuleFunc(func(c *api.Controller) {
		c.RAW(http.MethodGet, "/", ctl.index)
		c.RAW(http.MethodGet, "/news.rss", ctl.newsFeed)

		post := []gin.HandlerFunc{ctl.submitContact}
		if opts.Limiter != nil {
			post = append([]gin.HandlerFunc{middleware.RateLimitMiddleware(opts.Limiter)}, post...)
		}
		c.RAW(http.MethodPost, "/contact", post...)
	})
}

// render loads the three sections for one page view.
func (w *WebController) render(ctx *gin.Context) IndexPageData {
	rctx, cancel := context.WithTimeout(ctx.Request.Context(), w.opts.RenderTimeout)
	defer cancel()

	page := content.NewPage(w.conn, content.WithFetchTimeout(w.opts.FetchTimeout))
	if err := page.Load(rctx); err != nil {
		log.Debug().Err(err).Msg("[web] rendering with fallback content")
	}

	data := IndexPageData{
		Site:          site,
		Message:       page.Message(),
		News:          page.News(),
		Facilities:    page.Facilities(),
		NoticeSeconds: int(w.opts.Contact.Display / time.Second),
		Year:          time.Now().Year(),
	}
	data.Portrait = portraitFor(data.Message)
	if page.Pending() {
		data.Refresh = PendingRefresh
	}
	return data
}

// GET /
func (w *WebController) index(ctx *gin.Context) {
	data := w.render(ctx)
	data.Sent = ctx.Query("sent") == "1"
	ctx.HTML(http.StatusOK, "index.html", data)
}

// POST /contact
func (w *WebController) submitContact(ctx *gin.Context) {
	var m contact.Message
	if err := ctx.ShouldBind(&m); err != nil {
		w.rejectContact(ctx, m, http.StatusBadRequest, contactInvalidText)
		return
	}

	form := contact.NewForm(w.opts.Contact)
	defer form.Close()

	_, err := form.Submit(ctx.Request.Context(), m)
	switch {
	case errors.Is(err, contact.ErrInvalid):
		w.rejectContact(ctx, m, http.StatusBadRequest, contactInvalidText)
		return
	case err != nil:
		log.Warn().Err(err).Msg("[contact] web submit aborted")
		w.rejectContact(ctx, m, http.StatusRequestTimeout, contactFailedText)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/?sent=1#contact")
}

func (w *WebController) rejectContact(ctx *gin.Context, m contact.Message, code int, msg string) {
	data := w.render(ctx)
	data.Form = ContactFormView{Name: m.Name, Email: m.Email, Subject: m.Subject, Message: m.Message}
	data.ContactError = msg
	ctx.HTML(code, "index.html", data)
}
