package repositories

import (
	"path/filepath"

	"healthoffice_backend/internal/jsonstore"
	"healthoffice_backend/internal/models"
)

// Constructors for the JSON-file-backed collections. Each one pins the
// collection file name and the id extraction for its record type.

func NewStaffCollection(dataDir string) (*jsonstore.Collection[models.Staff], error) {
	return jsonstore.NewCollection(filepath.Join(dataDir, "staff.json"),
		func(s models.Staff) string { return s.ID })
}

func NewJobCollection(dataDir string) (*jsonstore.Collection[models.Job], error) {
	return jsonstore.NewCollection(filepath.Join(dataDir, "jobs.json"),
		func(j models.Job) string { return models.FormatID(j.ID) })
}

func NewActivityCollection(dataDir string) (*jsonstore.Collection[models.Activity], error) {
	return jsonstore.NewCollection(filepath.Join(dataDir, "activities.json"),
		func(a models.Activity) string { return models.FormatID(a.ID) })
}

func NewDownloadCollection(dataDir string) (*jsonstore.Collection[models.Download], error) {
	return jsonstore.NewCollection(filepath.Join(dataDir, "downloads.json"),
		func(d models.Download) string { return d.ID })
}

func NewProcurementCollection(dataDir string) (*jsonstore.Collection[models.Procurement], error) {
	return jsonstore.NewCollection(filepath.Join(dataDir, "procurement.json"),
		func(p models.Procurement) string { return p.ID })
}

func NewDonorCollection(dataDir string) (*jsonstore.Collection[models.Donor], error) {
	return jsonstore.NewCollection(filepath.Join(dataDir, "donors.json"),
		func(d models.Donor) string { return models.FormatID(d.ID) })
}
