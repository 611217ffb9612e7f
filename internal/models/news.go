package models

// News is a published announcement with an ordered image gallery and at
// most one attached PDF. Image entries are either /uploads/news/ paths
// or caller-supplied external URLs; stored records do not distinguish
// the two.
type News struct {
	BaseModel
	Title       string   `gorm:"not null" json:"title"`
	Description string   `json:"description"`
	Images      []string `gorm:"serializer:json" json:"images"`
	Pdf         string   `json:"pdf"`
}
