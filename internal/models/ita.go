package models

// ItaItem is one sub-topic of a disclosure: a mandatory text plus an
// optional PDF reference. Items live inside their parent record, not in
// a separate collection.
type ItaItem struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Ita is a transparency-disclosure header (MOIT topic) for a Buddhist
// calendar year, owning an ordered list of items.
type Ita struct {
	BaseModel
	Year  int       `gorm:"not null" json:"year"`
	Moit  string    `gorm:"not null" json:"moit"`
	Title string    `gorm:"not null" json:"title"`
	Items []ItaItem `gorm:"serializer:json" json:"items"`
}
