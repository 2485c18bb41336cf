package packets

// REQUESTS FOR /api/admin/*

type PrincipalMessageRequest struct {
	Title    string `json:"title"     binding:"required"`
	Name     string `json:"name"      binding:"required"`
	ImageURL string `json:"image_url"`
	Message  string `json:"message"   binding:"required"`
}

// NewsArticleRequest creates or replaces an article. ID is honoured on create only;
// when omitted the next free id is used.
type NewsArticleRequest struct {
	ID               *uint64 `json:"id"`
	Category         string  `json:"category"          binding:"required"`
	Date             string  `json:"date"              binding:"required"`
	Title            string  `json:"title"             binding:"required"`
	ShortDescription string  `json:"short_description" binding:"required"`
}

type FacilityRequest struct {
	ID          *uint64 `json:"id"`
	Name        string  `json:"name"        binding:"required"`
	Description string  `json:"description" binding:"required"`
	IconName    string  `json:"icon_name"`
}
