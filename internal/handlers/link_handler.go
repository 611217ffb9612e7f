package handlers

import (
	"errors"
	"net/http"

	"healthoffice_backend/internal/attachments"
	"healthoffice_backend/internal/dto"
	"healthoffice_backend/internal/models"
	"healthoffice_backend/internal/repositories"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LinkHandler manages the external-link directory. Each link has a
// single optional banner image.
type LinkHandler struct {
	*BaseHandler
	repo   repositories.LinkRepository
	binder *attachments.Binder
}

func NewLinkHandler(base *BaseHandler, repo repositories.LinkRepository, binder *attachments.Binder) *LinkHandler {
	return &LinkHandler{BaseHandler: base, repo: repo, binder: binder}
}

func (h *LinkHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	links := api.Group("/links")
	{
		links.GET("", h.List)
		links.GET("/:id", h.GetOne)
		links.POST("", gate, h.Create)
		links.PUT("/:id", gate, h.Update)
		links.DELETE("/:id", gate, h.Delete)
	}
}

func (h *LinkHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "links"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *LinkHandler) GetOne(c *gin.Context) {
	link, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("links", "Link not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "links"))
		}
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *LinkHandler) Create(c *gin.Context) {
	var form dto.LinkCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	image, _, err := h.binder.ReconcileSingle("", singleSlot(c, "image", "imageUrl"), "links")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "links"))
		return
	}

	link := &models.Link{Title: form.Title, URL: form.URL, Image: image}
	if err := h.repo.Create(c.Request.Context(), link); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "links"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Link created", "link": link})
}

func (h *LinkHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	link, err := h.repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("links", "Link not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "links"))
		}
		return
	}

	if title, ok := c.GetPostForm("title"); ok {
		link.Title = title
	}
	if url, ok := c.GetPostForm("url"); ok {
		link.URL = url
	}

	image, release, err := h.binder.ReconcileSingle(link.Image, singleSlot(c, "image", "imageUrl"), "links")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "links"))
		return
	}
	link.Image = image

	if err := h.repo.Update(ctx, link); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "links"))
		return
	}

	h.binder.Release(ctx, release)
	c.JSON(http.StatusOK, gin.H{"message": "Link updated", "link": link})
}

func (h *LinkHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	link, err := h.repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("links", "Link not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "links"))
		}
		return
	}

	if _, err := h.repo.Delete(ctx, link.ID); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "links"))
		return
	}

	h.binder.Release(ctx, []string{link.Image})
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted"})
}

// singleSlot assembles the request state of a single-attachment slot
// from a named file part and its explicit-URL companion field.
func singleSlot(c *gin.Context, fileField, urlField string) attachments.SlotRequest {
	req := attachments.SlotRequest{}
	if file, err := c.FormFile(fileField); err == nil {
		req.Upload = file
	}
	if url, ok := c.GetPostForm(urlField); ok {
		req.URL = &url
	}
	return req
}
