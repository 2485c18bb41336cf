package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/http/api"
	"github.com/Nixie-Tech-LLC/naulin/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/naulin/internal/model"
	"github.com/Nixie-Tech-LLC/naulin/internal/storage"
)

const maxAssetBytes = 8 << 20

type AssetController struct {
	storage storage.Storage
}

// AssetModule mounts POST /assets for image uploads (portraits, campus photos)
func AssetModule(s storage.Storage) api.Module {
	ctl := &AssetController{storage: s}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/assets", ctl.uploadAsset)
	})
}

// POST /api/admin/assets
func (a *AssetController) uploadAsset(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		log.Warn().Err(err).Msg("[admin] uploadAsset: missing file")
		return nil, api.BadRequest("file is required")
	}
	if fileHeader.Size > maxAssetBytes {
		return nil, &api.APIError{Code: http.StatusRequestEntityTooLarge, Message: "file too large"}
	}

	url, err := a.storage.SaveFile(ctx.Request.Context(), fileHeader, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return nil, &api.APIError{Code: http.StatusUnsupportedMediaType, Message: err.Error()}
		}
		log.Error().Err(err).Msg("[admin] uploadAsset: failed to store file")
		return nil, api.Internal("could not store file")
	}

	log.Info().Str("admin", admin.Email).Str("url", url).Msg("[admin] asset uploaded")
	return packets.AssetResponse{URL: url}, nil
}
