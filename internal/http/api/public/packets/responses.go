package packets

// RESPONSES FOR /api/content/*, /api/contact and /healthz

// ContactResponse acknowledges a contact submission. Nothing behind it is stored.
type ContactResponse struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Message          string `json:"message"`
	DisplayForMillis int64  `json:"display_for_ms"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}
