package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"healthoffice_backend/internal/attachments"
	"healthoffice_backend/internal/dto"
	"healthoffice_backend/internal/jsonstore"
	"healthoffice_backend/internal/models"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ProcurementHandler manages purchasing notices. Each notice owns a
// set of attached files; updates can remove named files and append
// new ones in the same request.
type ProcurementHandler struct {
	*BaseHandler
	notices *jsonstore.Collection[models.Procurement]
	binder  *attachments.Binder
}

func NewProcurementHandler(base *BaseHandler, notices *jsonstore.Collection[models.Procurement], binder *attachments.Binder) *ProcurementHandler {
	return &ProcurementHandler{BaseHandler: base, notices: notices, binder: binder}
}

func (h *ProcurementHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	procurement := api.Group("/procurement")
	{
		procurement.GET("", h.List)
		procurement.GET("/:id", h.GetOne)
		procurement.POST("", gate, h.Create)
		procurement.PUT("/:id", gate, h.Update)
		procurement.DELETE("/:id", gate, h.Delete)
	}
}

func (h *ProcurementHandler) List(c *gin.Context) {
	list, err := h.notices.List()
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "procurement"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProcurementHandler) GetOne(c *gin.Context) {
	notice, ok, err := h.notices.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "procurement"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("procurement", "Procurement notice not found"))
		return
	}
	c.JSON(http.StatusOK, notice)
}

func (h *ProcurementHandler) Create(c *gin.Context) {
	var form dto.ProcurementCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	mpForm, _ := c.MultipartForm()
	files, _, err := h.binder.ReconcileList(nil, formFiles(mpForm, "files"), c.PostFormArray("fileUrls"), nil, "procurement")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "procurement"))
		return
	}

	if form.Date == "" {
		form.Date = time.Now().Format("2006-01-02")
	}

	notice := models.Procurement{
		ID:    models.FormatID(jsonstore.NextTimestampID()),
		Title: form.Title,
		Date:  form.Date,
		Files: files,
	}
	if err := h.notices.Insert(notice); err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "procurement"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Procurement notice created", "procurement": notice})
}

func (h *ProcurementHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	current, ok, err := h.notices.Get(id)
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "procurement"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("procurement", "Procurement notice not found"))
		return
	}

	mpForm, _ := c.MultipartForm()
	files, release, err := h.binder.ReconcileList(
		current.Files,
		formFiles(mpForm, "files"),
		c.PostFormArray("fileUrls"),
		removedFiles(c),
		"procurement",
	)
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "procurement"))
		return
	}

	updated, ok, err := h.notices.Replace(id, func(p *models.Procurement) {
		if title, ok := c.GetPostForm("title"); ok {
			p.Title = title
		}
		if date, ok := c.GetPostForm("date"); ok {
			p.Date = date
		}
		p.Files = files
	})
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "procurement"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("procurement", "Procurement notice not found"))
		return
	}

	h.binder.Release(ctx, release)
	c.JSON(http.StatusOK, gin.H{"message": "Procurement notice updated", "procurement": updated})
}

// removedFiles reads the removal subset, which clients send either as
// repeated plain values or as one JSON-encoded array string.
func removedFiles(c *gin.Context) []string {
	values := c.PostFormArray("removedFiles")
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(values[0]), &parsed); err == nil {
			return parsed
		}
	}
	return values
}

func (h *ProcurementHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	removed, ok, err := h.notices.Delete(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "procurement"))
		return
	}
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("procurement", "Procurement notice not found"))
		return
	}

	h.binder.Release(ctx, removed.Files)
	c.JSON(http.StatusOK, gin.H{"message": "Procurement notice deleted"})
}
