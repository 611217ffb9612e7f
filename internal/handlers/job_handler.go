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

// JobHandler manages vacancy postings, backed by a JSON-file
// collection with numeric ids.
type JobHandler struct {
	*BaseHandler
	jobs   *jsonstore.Collection[models.Job]
	binder *attachments.Binder
}

func NewJobHandler(base *BaseHandler, jobs *jsonstore.Collection[models.Job], binder *attachments.Binder) *JobHandler {
	return &JobHandler{BaseHandler: base, jobs: jobs, binder: binder}
}

func (h *JobHandler) RegisterRoutes(api *gin.RouterGroup, gate gin.HandlerFunc) {
	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.GET("/:id", h.GetOne)
		jobs.POST("", gate, h.Create)
		jobs.PUT("/:id", gate, h.Update)
		jobs.DELETE("/:id", gate, h.Delete)
	}
}

func (h *JobHandler) List(c *gin.Context) {
	list, err := h.jobs.List()
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "jobs"))
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *JobHandler) GetOne(c *gin.Context) {
	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("jobs", "Job not found"))
		return
	}

	job, found, err := h.jobs.Get(models.FormatID(id))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "jobs"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("jobs", "Job not found"))
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	var form dto.JobCreateForm
	if !h.BindAndValidate(c, &form) {
		return
	}

	file, _, err := h.binder.ReconcileSingle("", singleSlot(c, "file", "fileUrl"), "jobs")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "jobs"))
		return
	}

	job := models.Job{
		ID:          jsonstore.NextTimestampID(),
		Title:       form.Title,
		Description: form.Description,
		Deadline:    form.Deadline,
		File:        file,
	}
	if err := h.jobs.Insert(job); err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "jobs"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Job posted", "job": job})
}

func (h *JobHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("jobs", "Job not found"))
		return
	}
	key := models.FormatID(id)

	current, found, err := h.jobs.Get(key)
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "jobs"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("jobs", "Job not found"))
		return
	}

	file, release, err := h.binder.ReconcileSingle(current.File, singleSlot(c, "file", "fileUrl"), "jobs")
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "jobs"))
		return
	}

	updated, found, err := h.jobs.Replace(key, func(j *models.Job) {
		if title, ok := c.GetPostForm("title"); ok {
			j.Title = title
		}
		if description, ok := c.GetPostForm("description"); ok {
			j.Description = description
		}
		if deadline, ok := c.GetPostForm("deadline"); ok {
			j.Deadline = deadline
		}
		j.File = file
	})
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "jobs"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("jobs", "Job not found"))
		return
	}

	h.binder.Release(ctx, release)
	c.JSON(http.StatusOK, gin.H{"message": "Job updated", "job": updated})
}

func (h *JobHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := ParseParamInt64(c, "id")
	if !ok {
		h.HandleServiceError(c, apperrors.NewNotFoundError("jobs", "Job not found"))
		return
	}

	removed, found, err := h.jobs.Delete(models.FormatID(id))
	if err != nil {
		h.HandleServiceError(c, apperrors.StorageError(err, "jobs"))
		return
	}
	if !found {
		h.HandleServiceError(c, apperrors.NewNotFoundError("jobs", "Job not found"))
		return
	}

	h.binder.Release(ctx, []string{removed.File})
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
