package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/naulin/internal/config"
	"github.com/Nixie-Tech-LLC/naulin/internal/storage"
)

// InitStorage selects and returns the configured upload backend
func InitStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesCDNURL,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Spaces storage: %w", err)
		}
		log.Info().Str("cdn", cfg.SpacesCDNURL).Msg("[storage] using DigitalOcean Spaces")
		return spacesStorage, nil
	}

	local := storage.NewLocalStorage(cfg.UploadDir, "/uploads")
	log.Info().Str("dir", cfg.UploadDir).Msg("[storage] using local file storage")
	return local, nil
}
