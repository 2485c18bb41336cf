package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/contact"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api/public/packets"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/middleware"
)

const ContactSuccessMessage = "Message sent successfully! We'll get back to you soon."

type ContactController struct {
	opts contact.Options
}

// ContactModule mounts POST /contact behind the per-IP limiter.
// The submission is acknowledged but not delivered anywhere.
func ContactModule(opts contact.Options, limiter *middleware.RateLimiter) api.Module {
	ctl := &ContactController{opts: opts}
	return api.ModuleFunc(func(c *api.Controller) {
		c.RAW(http.MethodPost, "/contact",
			middleware.RateLimitMiddleware(limiter),
			api.ResolveEndpoint(ctl.submit),
		)
	})
}

// POST /api/contact
func (c *ContactController) submit(ctx *gin.Context) (any, *api.APIError) {
	var request contact.Message
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	form := contact.NewForm(c.opts)
	defer form.Close()

	receipt, err := form.Submit(ctx.Request.Context(), request)
	switch {
	case errors.Is(err, contact.ErrInvalid):
		return nil, api.BadRequest(err.Error())
	case err != nil:
		log.Warn().Err(err).Msg("[contact] submit aborted")
		return nil, &api.APIError{Code: http.StatusRequestTimeout, Message: "submission cancelled"}
	}

	return packets.ContactResponse{
		ID:               receipt.ID.String(),
		Status:           contact.Acknowledged.String(),
		Message:          ContactSuccessMessage,
		DisplayForMillis: receipt.DisplayFor.Milliseconds(),
	}, nil
}
