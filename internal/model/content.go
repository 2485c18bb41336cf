package model

// PrincipalMessage is the singleton message shown in the leadership section.
type PrincipalMessage struct {
	Title    string `db:"title"     json:"title"     yaml:"title"`
	Name     string `db:"name"      json:"name"      yaml:"name"`
	ImageURL string `db:"image_url" json:"image_url" yaml:"image_url"`
	Message  string `db:"message"   json:"message"   yaml:"message"`
}

// NewsArticle is one entry of the news section. Date is display text and is
// passed through as-is.
type NewsArticle struct {
	ID               uint64 `db:"id"                json:"id"                yaml:"id"`
	Category         string `db:"category"          json:"category"          yaml:"category"`
	Date             string `db:"date"              json:"date"              yaml:"date"`
	Title            string `db:"title"             json:"title"             yaml:"title"`
	ShortDescription string `db:"short_description" json:"short_description" yaml:"short_description"`
}

// Facility is one card of the facilities section. IconName is a free-form tag
// used to pick an icon.
type Facility struct {
	ID          uint64 `db:"id"          json:"id"          yaml:"id"`
	Name        string `db:"name"        json:"name"        yaml:"name"`
	Description string `db:"description" json:"description" yaml:"description"`
	IconName    string `db:"icon_name"   json:"icon_name"   yaml:"icon_name"`
}
