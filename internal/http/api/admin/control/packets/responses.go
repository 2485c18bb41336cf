package packets

import "github.com/Nixie-Tech-LLC/naulin/internal/model"

// RESPONSES FOR /api/admin/*

// FacilityResponse mirrors model.Facility plus the icon the page will show for it.
type FacilityResponse struct {
	model.Facility
	Icon string `json:"icon"`
}

type AssetResponse struct {
	URL string `json:"url"`
}

type DeletedResponse struct {
	Deleted uint64 `json:"deleted"`
}
