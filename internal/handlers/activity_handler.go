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

// defaultActivityImage fills the image slot when an activity is created
// without one; the public site always renders a card image.
const defaultActivityImage = "/images/default.png"

// ActivityHandler manages event entries. Each activity has an image
// slot and a PDF slot, both optional.
type ActivityHandler struct {
	*BaseHandler
	activities *jsonstore.Collection[models.Activity]
	binder     *attachments.Binder
}

func NewActivityHandler(base *BaseHandler, activities *jsonstore.Collection[models.Activity], binder *attachments.Binder) *ActivityHandler {
	return &ActivityHandler{BaseHandler: base, activities: activities, binder: binder}
}

func (h *ActivityHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	activities := api.Group("/activities")
	{
		activities.GET("", h.List)
		activities.GET("/:id", h.GetOne)
		activities.POST("", gate, h.Create)
		activities.PUT("/:id", gate, h.Update)
		activities.DELETE("/:id", gate, h.Delete)
	}
}

func (h *ActivityHandler) List(c *gin.Context) {
	list, err := h.activities.List()
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ActivityHandler) GetOne(c *gin.Context) {
	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("activities", "Activity not found"))
		return
	}

	activity, found, err := h.activities.Get(models.FormatID(id))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("activities", "Activity not found"))
		return
	}
	c.JSON(http.StatusOK, activity)
}

func (h *ActivityHandler) Create(c *gin.Context) {
	var form dto.ActivityCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	image, _, err := h.binder.ReconcileSingle("", singleSlot(c, "image", "imageUrl"), "activities")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}
	pdf, _, err := h.binder.ReconcileSingle("", singleSlot(c, "pdf", "pdfUrl"), "activities")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}

	if image == "" {
		image = defaultActivityImage
	}

	activity := models.Activity{
		ID:          jsonstore.NextTimestampID(),
		Title:       form.Title,
		Description: form.Description,
		Image:       image,
		Pdf:         pdf,
	}
	if err := h.activities.Insert(activity); err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Activity added", "activity": activity})
}

func (h *ActivityHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("activities", "Activity not found"))
		return
	}
	key := models.FormatID(id)

	current, found, err := h.activities.Get(key)
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("activities", "Activity not found"))
		return
	}

	image, imageRelease, err := h.binder.ReconcileSingle(current.Image, singleSlot(c, "image", "imageUrl"), "activities")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}
	pdf, pdfRelease, err := h.binder.ReconcileSingle(current.Pdf, singleSlot(c, "pdf", "pdfUrl"), "activities")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}

	updated, found, err := h.activities.Replace(key, func(a *models.Activity) {
		if title, ok := c.GetPostForm("title"); ok {
			a.Title = title
		}
		if description, ok := c.GetPostForm("description"); ok {
			a.Description = description
		}
		a.Image = image
		a.Pdf = pdf
	})
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("activities", "Activity not found"))
		return
	}

	h.binder.Release(ctx, append(imageRelease, pdfRelease...))
	c.JSON(http.StatusOK, gin.H{"message": "Activity updated", "activity": updated})
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("activities", "Activity not found"))
		return
	}

	removed, found, err := h.activities.Delete(models.FormatID(id))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "activities"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("activities", "Activity not found"))
		return
	}

	h.binder.Release(ctx, []string{removed.Image, removed.Pdf})
	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted"})
}
