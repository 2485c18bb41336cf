package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/http/api"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api/public/packets"
	"github.com/Nixie-Tech-LLC/naulin/internal/model"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
)

type ContentController struct {
	conn *provider.Connection
}

func newContentController(conn *provider.Connection) *ContentController {
	return &ContentController{conn: conn}
}

// ContentModule mounts the public, read-only /content endpoints
func ContentModule(conn *provider.Connection) api.Module {
	ctl := newContentController(conn)
	return api.ModuleFunc(func(c *api.Controller) {
		for _, kind := range provider.Kinds {
			c.RAW(http.MethodGet, "/content/"+string(kind), ctl.serve(kind))
		}
	})
}

// HealthModule mounts /healthz, which reports whether the provider is ready.
func HealthModule(conn *provider.Connection) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.RAW(http.MethodGet, "/healthz", func(ctx *gin.Context) {
			if !conn.IsReady() {
				ctx.JSON(http.StatusServiceUnavailable, packets.HealthResponse{Status: "starting", Provider: "connecting"})
				return
			}
			ctx.JSON(http.StatusOK, packets.HealthResponse{Status: "ok", Provider: "ready"})
		})
	})
}

// GET /api/content/:kind
func (c *ContentController) serve(kind provider.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p, err := c.conn.Provider()
		if err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "content provider not ready"})
			return
		}

		payload, err := payloadFor(ctx.Request.Context(), p, kind)
		if err != nil {
			log.Error().Err(err).Str("kind", string(kind)).Msg("[content] failed to load payload")
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "could not load content"})
			return
		}

		ctx.Header("ETag", payload.ETag)
		ctx.Header("Cache-Control", "no-cache")
		if etagMatches(ifNoneMatch(ctx), payload.ETag) {
			ctx.Status(http.StatusNotModified)
			return
		}
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload.Body)
	}
}

func payloadFor(ctx context.Context, p provider.Provider, kind provider.Kind) (provider.Payload, error) {
	if src, ok := p.(provider.PayloadSource); ok {
		return src.Payload(ctx, kind)
	}

	var v any
	var err error
	switch kind {
	case provider.KindPrincipalMessage:
		v, err = p.FetchPrincipalMessage(ctx)
	case provider.KindNews:
		news, fetchErr := p.FetchNewsArticles(ctx)
		if news == nil {
			news = []model.NewsArticle{}
		}
		v, err = news, fetchErr
	case provider.KindFacilities:
		facilities, fetchErr := p.FetchFacilities(ctx)
		if facilities == nil {
			facilities = []model.Facility{}
		}
		v, err = facilities, fetchErr
	default:
		return provider.Payload{}, fmt.Errorf("%w: %q", provider.ErrUnknownKind, kind)
	}
	if err != nil {
		return provider.Payload{}, err
	}
	body, err := json.Marshal(v)
	if err != nil {
		return provider.Payload{}, err
	}
	return provider.Payload{Body: body, ETag: provider.ETag(body)}, nil
}

func ifNoneMatch(ctx *gin.Context) string {
	if v := ctx.GetHeader("If-None-Match"); v != "" {
		return v
	}
	return ctx.GetHeader("X-If-None-Match")
}

// etagMatches applies the weak comparison used for If-None-Match.
func etagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}
