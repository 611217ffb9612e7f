// Package dto holds the request shapes accepted by the content API.
// Multipart scalar fields bind through `form` tags; validation messages
// use the `json` names.
package dto

type NewsCreateForm struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description"`
}

type ItaCreateForm struct {
	Year  string `form:"year" json:"year"`
	Moit  string `form:"moit" json:"moit" validate:"required"`
	Title string `form:"title" json:"title" validate:"required"`
}

type LinkCreateForm struct {
	Title string `form:"title" json:"title" validate:"required"`
	URL   string `form:"url" json:"url" validate:"required"`
}

type StaffCreateForm struct {
	Name       string `form:"name" json:"name" validate:"required"`
	Position   string `form:"position" json:"position"`
	Department string `form:"department" json:"department"`
}

type JobCreateForm struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description"`
	Deadline    string `form:"deadline" json:"deadline"`
}

type ActivityCreateForm struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description"`
}

type DownloadCreateForm struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Category string `form:"category" json:"category"`
}

type ProcurementCreateForm struct {
	Title string `form:"title" json:"title" validate:"required"`
	Date  string `form:"date" json:"date"`
}

type DonorCreateForm struct {
	Name   string `form:"name" json:"name" validate:"required"`
	Amount string `form:"amount" json:"amount"`
	Item   string `form:"item" json:"item"`
	Date   string `form:"date" json:"date"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
