package handlers

import (
	"net/http"
	"strconv"

	"healthoffice_backend/internal/attachments"
	"healthoffice_backend/internal/dto"
	"healthoffice_backend/internal/jsonstore"
	"healthoffice_backend/internal/models"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// DonorHandler manages donation acknowledgements. The amount field
// arrives as a form string and is parsed leniently, malformed values
// default to zero.
type DonorHandler struct {
	*BaseHandler
	donors *jsonstore.Collection[models.Donor]
	binder *attachments.Binder
}

func NewDonorHandler(base *BaseHandler, donors *jsonstore.Collection[models.Donor], binder *attachments.Binder) *DonorHandler {
	return &DonorHandler{BaseHandler: base, donors: donors, binder: binder}
}

func (h *DonorHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	donate := api.Group("/donate")
	{
		donate.GET("", h.List)
		donate.GET("/:id", h.GetOne)
		donate.POST("", gate, h.Create)
		donate.PUT("/:id", gate, h.Update)
		donate.DELETE("/:id", gate, h.Delete)
	}
}

func (h *DonorHandler) List(c *gin.Context) {
	list, err := h.donors.List()
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "donate"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DonorHandler) GetOne(c *gin.Context) {
	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("donate", "Donor not found"))
		return
	}

	donor, found, err := h.donors.Get(models.FormatID(id))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "donate"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("donate", "Donor not found"))
		return
	}
	c.JSON(http.StatusOK, donor)
}

func (h *DonorHandler) Create(c *gin.Context) {
	var form dto.DonorCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	image, _, err := h.binder.ReconcileSingle("", singleSlot(c, "image", "imageUrl"), "donate")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "donate"))
		return
	}

	donor := models.Donor{
		ID:     jsonstore.NextTimestampID(),
		Name:   form.Name,
		Amount: parseAmount(form.Amount),
		Item:   form.Item,
		Date:   form.Date,
		Image:  image,
	}
	if err := h.donors.Insert(donor); err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "donate"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Donor recorded", "donor": donor})
}

func (h *DonorHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("donate", "Donor not found"))
		return
	}
	key := models.FormatID(id)

	current, found, err := h.donors.Get(key)
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "donate"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("donate", "Donor not found"))
		return
	}

	image, release, err := h.binder.ReconcileSingle(current.Image, singleSlot(c, "image", "imageUrl"), "donate")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "donate"))
		return
	}

	updated, found, err := h.donors.Replace(key, func(d *models.Donor) {
		if name, ok := c.GetPostForm("name"); ok {
			d.Name = name
		}
		if amount, ok := c.GetPostForm("amount"); ok {
			d.Amount = parseAmount(amount)
		}
		if item, ok := c.GetPostForm("item"); ok {
			d.Item = item
		}
		if date, ok := c.GetPostForm("date"); ok {
			d.Date = date
		}
		d.Image = image
	})
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "donate"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("donate", "Donor not found"))
		return
	}

	h.binder.Release(ctx, release)
	c.JSON(http.StatusOK, gin.H{"message": "Donor updated", "donor": updated})
}

func (h *DonorHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("donate", "Donor not found"))
		return
	}

	removed, found, err := h.donors.Delete(models.FormatID(id))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "donate"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("donate", "Donor not found"))
		return
	}

	h.binder.Release(ctx, []string{removed.Image})
	c.JSON(http.StatusOK, gin.H{"message": "Donor deleted"})
}

func parseAmount(value string) float64 {
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return amount
}
