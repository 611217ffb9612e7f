package handlers

import (
	"net/http"

	"healthoffice_backend/internal/storage"
	"healthoffice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// UploadHandler is the generic image upload endpoint used by editor
// widgets that need a stored URL before the owning record exists.
type UploadHandler struct {
	*BaseHandler
	store storage.FileStore
}

func NewUploadHandler(base *BaseHandler, store storage.FileStore) *UploadHandler {
	return &UploadHandler{BaseHandler: base, store: store}
}

func (h *UploadHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	api.POST("/upload/image", gate, h.UploadImage)
}

// UploadImage stores a single `image` part under the kind named by the
// `type` query parameter, defaulting to news.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	kind := c.DefaultQuery("type", "news")
	if !knownKind(kind) {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Unknown upload type: "+kind))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Missing image file"))
		return
	}

	path, err := h.store.Save(kind, file)
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, kind))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File uploaded", "fileUrl": path})
}

func knownKind(kind string) bool {
	for _, k := range storage.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
