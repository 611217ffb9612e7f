package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"healthoffice_backend/internal/attachments"
	"healthoffice_backend/internal/dto"
	"healthoffice_backend/internal/models"
	"healthoffice_backend/internal/repositories"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ItaHandler manages transparency disclosures: a year/MOIT/title header
// owning an ordered list of items, each with an optional PDF.
type ItaHandler struct {
	*BaseHandler
	repo   repositories.ItaRepository
	binder *attachments.Binder
}

func NewItaHandler(base *BaseHandler, repo repositories.ItaRepository, binder *attachments.Binder) *ItaHandler {
	return &ItaHandler{BaseHandler: base, repo: repo, binder: binder}
}

func (h *ItaHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	ita := api.Group("/ita")
	{
		ita.GET("", h.List)
		ita.GET("/:id", h.GetOne)
		ita.POST("", gate, h.Create)
		ita.PUT("/:id", gate, h.Update)
		ita.DELETE("/:id", gate, h.Delete)
	}
}

func (h *ItaHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "ita"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ItaHandler) GetOne(c *gin.Context) {
	ita, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("ita", "Disclosure not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "ita"))
		}
		return
	}
	c.JSON(http.StatusOK, ita)
}

func (h *ItaHandler) Create(c *gin.Context) {
	var form dto.ItaCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	mpForm, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	items, err := h.binder.BuildItems(mpForm, "ita")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "ita"))
		return
	}

	ita := &models.Ita{
		Year:  toBuddhistYear(form.Year),
		Moit:  form.Moit,
		Title: form.Title,
		Items: items,
	}
	if err := h.repo.Create(c.Request.Context(), ita); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "ita"))
		return
	}

	c.JSON(http.StatusCreated, ita)
}

func (h *ItaHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	ita, err := h.repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("ita", "Disclosure not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "ita"))
		}
		return
	}

	mpForm, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	items, err := h.binder.BuildItems(mpForm, "ita")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "ita"))
		return
	}

	// Items are rebuilt wholesale on update; stored files the new item
	// list no longer references get released.
	release := supersededItemFiles(ita.Items, items)

	if year, ok := c.GetPostForm("year"); ok {
		ita.Year = toBuddhistYear(year)
	}
	if moit, ok := c.GetPostForm("moit"); ok {
		ita.Moit = moit
	}
	if title, ok := c.GetPostForm("title"); ok {
		ita.Title = title
	}
	ita.Items = items

	if err := h.repo.Update(ctx, ita); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "ita"))
		return
	}

	h.binder.Release(ctx, release)
	c.JSON(http.StatusOK, ita)
}

func (h *ItaHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	ita, err := h.repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("ita", "Disclosure not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "ita"))
		}
		return
	}

	if _, err := h.repo.Delete(ctx, ita.ID); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "ita"))
		return
	}

	var paths []string
	for _, item := range ita.Items {
		paths = append(paths, item.URL)
	}
	h.binder.Release(ctx, paths)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// toBuddhistYear parses the year field, defaulting to the current year
// in the Buddhist calendar when absent or malformed.
func toBuddhistYear(value string) int {
	if value == "" {
		return time.Now().Year() + 543
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return time.Now().Year() + 543
	}
	return year
}

func supersededItemFiles(old, updated []models.ItaItem) []string {
	kept := make(map[string]bool, len(updated))
	for _, item := range updated {
		kept[item.URL] = true
	}

	var release []string
	for _, item := range old {
		if item.URL != "" && !kept[item.URL] {
			release = append(release, item.URL)
		}
	}
	return release
}
