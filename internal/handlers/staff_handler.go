package handlers

import (
	"net/http"

	"healthoffice_backend/internal/attachments"
	"healthoffice_backend/internal/dto"
	"healthoffice_backend/internal/jsonstore"
	"healthoffice_backend/internal/models"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// StaffHandler manages the personnel directory, backed by a JSON-file
// collection. Each entry carries a single optional portrait image.
type StaffHandler struct {
	*BaseHandler
	staff  *jsonstore.Collection[models.Staff]
	binder *attachments.Binder
}

func NewStaffHandler(base *BaseHandler, staff *jsonstore.Collection[models.Staff], binder *attachments.Binder) *StaffHandler {
	return &StaffHandler{BaseHandler: base, staff: staff, binder: binder}
}

func (h *StaffHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	staff := api.Group("/staff")
	{
		staff.GET("", h.List)
		staff.GET("/:id", h.GetOne)
		staff.POST("", gate, h.Create)
		staff.PUT("/:id", gate, h.Update)
		staff.DELETE("/:id", gate, h.Delete)
	}
}

func (h *StaffHandler) List(c *gin.Context) {
	list, err := h.staff.List()
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "staff"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *StaffHandler) GetOne(c *gin.Context) {
	entry, ok, err := h.staff.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "staff"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("staff", "Staff member not found"))
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var form dto.StaffCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	image, _, err := h.binder.ReconcileSingle("", singleSlot(c, "image", "imageUrl"), "staff")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "staff"))
		return
	}

	entry := models.Staff{
		ID:         models.FormatID(jsonstore.NextTimestampID()),
		Name:       form.Name,
		Position:   form.Position,
		Department: form.Department,
		Image:      image,
	}
	if err := h.staff.Insert(entry); err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "staff"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Staff member added", "staff": entry})
}

func (h *StaffHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	current, ok, err := h.staff.Get(id)
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "staff"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("staff", "Staff member not found"))
		return
	}

	image, release, err := h.binder.ReconcileSingle(current.Image, singleSlot(c, "image", "imageUrl"), "staff")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "staff"))
		return
	}

	updated, ok, err := h.staff.Replace(id, func(s *models.Staff) {
		if name, ok := c.GetPostForm("name"); ok {
			s.Name = name
		}
		if position, ok := c.GetPostForm("position"); ok {
			s.Position = position
		}
		if department, ok := c.GetPostForm("department"); ok {
			s.Department = department
		}
		s.Image = image
	})
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "staff"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("staff", "Staff member not found"))
		return
	}

	h.binder.Release(ctx, release)
	c.JSON(http.StatusOK, gin.H{"message": "Staff member updated", "staff": updated})
}

func (h *StaffHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	removed, ok, err := h.staff.Delete(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "staff"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("staff", "Staff member not found"))
		return
	}

	h.binder.Release(ctx, []string{removed.Image})
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted"})
}
