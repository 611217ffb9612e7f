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

// DownloadHandler manages the public document library. Each entry
// points at a single stored file or external URL.
type DownloadHandler struct {
	*BaseHandler
	downloads *jsonstore.Collection[models.Download]
	binder    *attachments.Binder
}

func NewDownloadHandler(base *BaseHandler, downloads *jsonstore.Collection[models.Download], binder *attachments.Binder) *DownloadHandler {
	return &DownloadHandler{BaseHandler: base, downloads: downloads, binder: binder}
}

func (h *DownloadHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	downloads := api.Group("/downloads")
	{
		downloads.GET("", h.List)
		downloads.GET("/:id", h.GetOne)
		downloads.POST("", gate, h.Create)
		downloads.PUT("/:id", gate, h.Update)
		downloads.DELETE("/:id", gate, h.Delete)
	}
}

func (h *DownloadHandler) List(c *gin.Context) {
	list, err := h.downloads.List()
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "downloads"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DownloadHandler) GetOne(c *gin.Context) {
	entry, ok, err := h.downloads.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "downloads"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("downloads", "Download not found"))
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *DownloadHandler) Create(c *gin.Context) {
	var form dto.DownloadCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	url, _, err := h.binder.ReconcileSingle("", singleSlot(c, "file", "fileUrl"), "downloads")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "downloads"))
		return
	}

	entry := models.Download{
		ID:       models.FormatID(jsonstore.NextTimestampID()),
		Name:     form.Name,
		Category: form.Category,
		URL:      url,
	}
	if err := h.downloads.Insert(entry); err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "downloads"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Download added", "download": entry})
}

func (h *DownloadHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	current, ok, err := h.downloads.Get(id)
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "downloads"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("downloads", "Download not found"))
		return
	}

	url, release, err := h.binder.ReconcileSingle(current.URL, singleSlot(c, "file", "fileUrl"), "downloads")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "downloads"))
		return
	}

	updated, ok, err := h.downloads.Replace(id, func(d *models.Download) {
		if name, ok := c.GetPostForm("name"); ok {
			d.Name = name
		}
		if category, ok := c.GetPostForm("category"); ok {
			d.Category = category
		}
		d.URL = url
	})
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "downloads"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("downloads", "Download not found"))
		return
	}

	h.binder.Release(ctx, release)
	c.JSON(http.StatusOK, gin.H{"message": "Download updated", "download": updated})
}

func (h *DownloadHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	removed, ok, err := h.downloads.Delete(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "downloads"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("downloads", "Download not found"))
		return
	}

	h.binder.Release(ctx, []string{removed.URL})
	c.JSON(http.StatusOK, gin.H{"message": "Download deleted"})
}
