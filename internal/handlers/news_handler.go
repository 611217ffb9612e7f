package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"healthoffice_backend/internal/attachments"
	"healthoffice_backend/internal/dto"
	"healthoffice_backend/internal/models"
	"healthoffice_backend/internal/repositories"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewsHandler exposes the announcement CRUD surface. A news record
// carries an ordered image gallery plus at most one PDF.
type NewsHandler struct {
	*BaseHandler
	repo   repositories.NewsRepository
	binder *attachments.Binder
}

func NewNewsHandler(base *BaseHandler, repo repositories.NewsRepository, binder *attachments.Binder) *NewsHandler {
	return &NewsHandler{BaseHandler: base, repo: repo, binder: binder}
}

func (h *NewsHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	news := api.Group("/news")
	{
		news.GET("", h.List)
		news.GET("/:id", h.GetOne)
		news.POST("/upload", gate, h.Create)
		news.PUT("/:id", gate, h.Update)
		news.DELETE("/:id", gate, h.Delete)
	}
}

func (h *NewsHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "news"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NewsHandler) GetOne(c *gin.Context) {
	news, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("news", "News not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "news"))
		}
		return
	}
	c.JSON(http.StatusOK, news)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var form dto.NewsCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	files, _ := c.MultipartForm()
	images, _, err := h.binder.ReconcileList(nil, formFiles(files, "images"), imageURLs(c), nil, "news")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "news"))
		return
	}

	pdf, _, err := h.binder.ReconcileSingle("", attachments.SlotRequest{Upload: firstFile(files, "pdf")}, "news")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "news"))
		return
	}

	news := &models.News{
		Title:       form.Title,
		Description: form.Description,
		Images:      images,
		Pdf:         pdf,
	}
	if err := h.repo.Create(c.Request.Context(), news); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "news"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News added successfully", "news": news})
}

func (h *NewsHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	news, err := h.repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("news", "News not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "news"))
		}
		return
	}

	if title, ok := c.GetPostForm("title"); ok {
		news.Title = title
	}
	if description, ok := c.GetPostForm("description"); ok {
		news.Description = description
	}

	files, _ := c.MultipartForm()

	images, releaseImages, err := h.binder.ReconcileList(news.Images, formFiles(files, "images"), imageURLs(c), nil, "news")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "news"))
		return
	}
	news.Images = images

	pdf, releasePdf, err := h.binder.ReconcileSingle(news.Pdf, attachments.SlotRequest{Upload: firstFile(files, "pdf")}, "news")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "news"))
		return
	}
	news.Pdf = pdf

	if err := h.repo.Update(ctx, news); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "news"))
		return
	}

	h.binder.Release(ctx, append(releaseImages, releasePdf...))
	c.JSON(http.StatusOK, gin.H{"message": "News updated successfully", "news": news})
}

func (h *NewsHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	news, err := h.repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.HandleServiceError(c, apperrors.NewNotFoundError("news", "News not found"))
		} else {
			h.HandleServiceError(c, apperrors.DatabaseError(err, "news"))
		}
		return
	}

	if _, err := h.repo.Delete(ctx, news.ID); err != nil {
		h.HandleServiceError(c, apperrors.DatabaseError(err, "news"))
		return
	}

	h.binder.Release(ctx, append(append([]string{}, news.Images...), news.Pdf))
	c.JSON(http.StatusOK, gin.H{"message": "News deleted successfully"})
}

// imageURLs gathers explicit image URLs from the imageUrl field, which
// clients send either repeated or as one comma-separated string.
func imageURLs(c *gin.Context) []string {
	var urls []string
	for _, value := range c.PostFormArray("imageUrl") {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				urls = append(urls, trimmed)
			}
		}
	}
	return urls
}

func formFiles(form *multipart.Form, field string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	return form.File[field]
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	files := formFiles(form, field)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
