package endpoints

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/content"
	"github.com/Nixie-Tech-LLC/naulin/internal/db"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/naulin/internal/model"
	"github.com/Nixie-Tech-LLC/naulin/internal/notify"
	"github.com/Nixie-Tech-LLC/naulin/internal/provider"
)

// Invalidator drops cached content after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, kinds ...provider.Kind) error
}

type ContentController struct {
	store    db.Store
	cache    Invalidator
	notifier notify.Notifier
}

func newContentController(store db.Store, cache Invalidator, notifier notify.Notifier) *ContentController {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &ContentController{store: store, cache: cache, notifier: notifier}
}

// ContentModule mounts all authenticated page content endpoints
func ContentModule(store db.Store, cache Invalidator, notifier notify.Notifier) api.Module {
	ctl := newContentController(store, cache, notifier)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/principal-message", ctl.getPrincipalMessage)
		c.PUT("/principal-message", ctl.putPrincipalMessage)

		c.GET("/news", ctl.listNews)
		c.POST("/news", ctl.createNews)
		c.PUT("/news/:id", ctl.updateNews)
		c.DELETE("/news/:id", ctl.deleteNews)

		c.GET("/facilities", ctl.listFacilities)
		c.POST("/facilities", ctl.createFacility)
		c.PUT("/facilities/:id", ctl.updateFacility)
		c.DELETE("/facilities/:id", ctl.deleteFacility)
	})
}

// changed invalidates the cached payload and tells other instances to do the same.
func (c *ContentController) changed(ctx context.Context, kind provider.Kind) {
	if c.cache != nil {
		if err := c.cache.Invalidate(ctx, kind); err != nil {
			log.Warn().Err(err).Str("kind", string(kind)).Msg("[admin] failed to invalidate content cache")
		}
	}
	if err := c.notifier.ContentUpdated(kind); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("[admin] failed to publish content update")
	}
}

func parseID(ctx *gin.Context) (uint64, *api.APIError) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		log.Error().Str("id", ctx.Param("id")).Msg("[admin] invalid id")
		return 0, api.BadRequest("invalid id")
	}
	return id, nil
}

func storeError(err error, what string) *api.APIError {
	if errors.Is(err, db.ErrNotFound) {
		return api.NotFound(what + " not found")
	}
	return api.Internal("could not save " + what)
}

// @ PRINCIPAL MESSAGE

// GET /api/admin/principal-message
func (c *ContentController) getPrincipalMessage(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	m, err := c.store.GetPrincipalMessage(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, api.NotFound("principal message not set")
		}
		return nil, api.Internal("could not load principal message")
	}
	return m, nil
}

// PUT /api/admin/principal-message
func (c *ContentController) putPrincipalMessage(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.PrincipalMessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	m := model.PrincipalMessage{
		Title:    request.Title,
		Name:     request.Name,
		ImageURL: request.ImageURL,
		Message:  request.Message,
	}
	if err := c.store.UpsertPrincipalMessage(ctx.Request.Context(), m); err != nil {
		return nil, storeError(err, "principal message")
	}

	c.changed(ctx.Request.Context(), provider.KindPrincipalMessage)
	log.Info().Str("admin", admin.Email).Msg("[admin] principal message updated")
	return m, nil
}

// @ NEWS

// GET /api/admin/news
func (c *ContentController) listNews(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	out, err := c.store.ListNewsArticles(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("could not list news")
	}
	return out, nil
}

// POST /api/admin/news
func (c *ContentController) createNews(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.NewsArticleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	a := model.NewsArticle{
		Category:         request.Category,
		Date:             request.Date,
		Title:            request.Title,
		ShortDescription: request.ShortDescription,
	}
	if request.ID != nil {
		a.ID = *request.ID
	}

	created, err := c.store.CreateNewsArticle(ctx.Request.Context(), a)
	if err != nil {
		return nil, storeError(err, "article")
	}

	c.changed(ctx.Request.Context(), provider.KindNews)
	log.Info().Str("admin", admin.Email).Uint64("id", created.ID).Msg("[admin] article created")
	return created, nil
}

// PUT /api/admin/news/:id
func (c *ContentController) updateNews(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, apiErr := parseID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.NewsArticleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	a := model.NewsArticle{
		ID:               id,
		Category:         request.Category,
		Date:             request.Date,
		Title:            request.Title,
		ShortDescription: request.ShortDescription,
	}
	if err := c.store.UpdateNewsArticle(ctx.Request.Context(), a); err != nil {
		return nil, storeError(err, "article")
	}

	c.changed(ctx.Request.Context(), provider.KindNews)
	log.Info().Str("admin", admin.Email).Uint64("id", id).Msg("[admin] article updated")
	return a, nil
}

// DELETE /api/admin/news/:id
func (c *ContentController) deleteNews(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, apiErr := parseID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := c.store.DeleteNewsArticle(ctx.Request.Context(), id); err != nil {
		return nil, storeError(err, "article")
	}

	c.changed(ctx.Request.Context(), provider.KindNews)
	log.Info().Str("admin", admin.Email).Uint64("id", id).Msg("[admin] article deleted")
	return packets.DeletedResponse{Deleted: id}, nil
}

// @ FACILITIES

func facilityResponse(f model.Facility) packets.FacilityResponse {
	return packets.FacilityResponse{Facility: f, Icon: string(content.ResolveIcon(f.IconName))}
}

// GET /api/admin/facilities
func (c *ContentController) listFacilities(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	all, err := c.store.ListFacilities(ctx.Request.Context())
	if err != nil {
		return nil, api.Internal("could not list facilities")
	}
	out := make([]packets.FacilityResponse, 0, len(all))
	for _, f := range all {
		out = append(out, facilityResponse(f))
	}
	return out, nil
}

// POST /api/admin/facilities
func (c *ContentController) createFacility(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.FacilityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	f := model.Facility{
		Name:        request.Name,
		Description: request.Description,
		IconName:    request.IconName,
	}
	if request.ID != nil {
		f.ID = *request.ID
	}

	created, err := c.store.CreateFacility(ctx.Request.Context(), f)
	if err != nil {
		return nil, storeError(err, "facility")
	}

	c.changed(ctx.Request.Context(), provider.KindFacilities)
	log.Info().Str("admin", admin.Email).Uint64("id", created.ID).Msg("[admin] facility created")
	return facilityResponse(created), nil
}

// PUT /api/admin/facilities/:id
func (c *ContentController) updateFacility(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, apiErr := parseID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.FacilityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	f := model.Facility{
		ID:          id,
		Name:        request.Name,
		Description: request.Description,
		IconName:    request.IconName,
	}
	if err := c.store.UpdateFacility(ctx.Request.Context(), f); err != nil {
		return nil, storeError(err, "facility")
	}

	c.changed(ctx.Request.Context(), provider.KindFacilities)
	log.Info().Str("admin", admin.Email).Uint64("id", id).Msg("[admin] facility updated")
	return facilityResponse(f), nil
}

// DELETE /api/admin/facilities/:id
func (c *ContentController) deleteFacility(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id, apiErr := parseID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := c.store.DeleteFacility(ctx.Request.Context(), id); err != nil {
		return nil, storeError(err, "facility")
	}

	c.changed(ctx.Request.Context(), provider.KindFacilities)
	log.Info().Str("admin", admin.Email).Uint64("id", id).Msg("[admin] facility deleted")
	return packets.DeletedResponse{Deleted: id}, nil
}
