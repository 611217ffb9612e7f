package models

// Link is an external resource shown on the site, with an optional
// uploaded thumbnail.
type Link struct {
	BaseModel
	Title string `gorm:"not null" json:"title"`
	URL   string `gorm:"not null" json:"url"`
	Image string `json:"image"`
}
