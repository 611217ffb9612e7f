package models

import "strconv"

// Records persisted as JSON-array files (see internal/jsonstore). Their
// ids are timestamp-derived; jobs, activities and donors keep numeric
// ids, the rest use strings. Each handler parses its path parameter
// into the matching type before any lookup.

// Staff is a directory entry with an optional portrait image.
type Staff struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Image      string `json:"image"`
}

// Job is a vacancy posting with an optional attached document.
type Job struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	File        string `json:"file"`
}

// Activity is a news-like event entry with image and PDF slots.
type Activity struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Pdf         string `json:"pdf"`
}

// Download is a publicly downloadable document.
type Download struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

// Procurement is a purchasing notice owning a set of attached files,
// individually removable on update.
type Procurement struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Date  string   `json:"date"`
	Files []string `json:"files"`
}

// Donor is a donation acknowledgement entry.
type Donor struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Item   string  `json:"item"`
	Date   string  `json:"date"`
	Image  string  `json:"image"`
}

// FormatID renders a numeric record id in its canonical string form.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
