package jobs

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/internal/middleware"
	"github.com/aws-community-vadodara/feedback-hub/internal/models"
	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
	"github.com/aws-community-vadodara/feedback-hub/pkg/storage"
)

// BlobStore uploads resume blobs and signs download URLs. Implemented by
// storage.S3. Keys are opaque references; uploads happen before the guarded
// insert and are not rolled back when the insert hits a conflict.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error)
	PresignExpire() time.Duration
	DeleteObject(ctx context.Context, key string) error
}

// ResumeForm is the multipart body for POST /api/jobs/resumes.
type ResumeForm struct {
	Name       string `form:"name" binding:"required"`
	Phone      string `form:"phone" binding:"required"`
	Experience string `form:"experience" binding:"required"`
	Skills     string `form:"skills" binding:"required"`
}

// ApplyForm is the multipart body for POST /api/jobs/apply.
type ApplyForm struct {
	JobID       string `form:"job_id" binding:"required"`
	JobTitle    string `form:"job_title" binding:"required"`
	Company     string `form:"company" binding:"required"`
	Name        string `form:"name" binding:"required"`
	Phone       string `form:"phone" binding:"required"`
	CoverLetter string `form:"cover_letter"`
}

// Handler handles job portal HTTP endpoints.
type Handler struct {
	repo         *Repository
	resumes      ResumeStore
	applications ApplicationStore
	blobs        BlobStore
	logger       *zap.Logger
}

// NewHandler creates a jobs handler. blobs may be nil when S3 is not
// configured; upload endpoints then report storage unavailable.
func NewHandler(repo *Repository, resumes ResumeStore, applications ApplicationStore, blobs BlobStore, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, resumes: resumes, applications: applications, blobs: blobs, logger: logger}
}

// List handles GET /api/jobs.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list jobs failed", zap.Error(err))
		response.Internal(c, "failed to fetch jobs")
		return
	}
	response.OK(c, list)
}

// CheckResume handles GET /api/jobs/resumes/check.
func (h *Handler) CheckResume(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)
	has, err := h.resumes.HasResume(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("check resume failed", zap.Error(err))
		response.Internal(c, "failed to check resume status")
		return
	}
	response.OK(c, gin.H{"has_resume": has})
}

// SubmitResume handles POST /api/jobs/resumes. The blob is uploaded first
// and the record inserted second; a conflict leaves the blob orphaned,
// which is accepted over a two-phase commit.
func (h *Handler) SubmitResume(c *gin.Context) {
	if h.blobs == nil {
		response.ServiceUnavailable(c, "file storage unavailable")
		return
	}

	var form ResumeForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		response.BadRequest(c, "no file uploaded")
		return
	}
	if fileHeader.Size > storage.MaxResumeFileSize {
		response.BadRequest(c, "file too large (max 10MB)")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !storage.ValidateResumeFileType(contentType, fileHeader.Filename) {
		response.BadRequest(c, "invalid file type, only PDF, DOC and DOCX files are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to open uploaded file")
		return
	}
	defer file.Close()

	key := storage.ResumeKey(uuid.New().String(), fileHeader.Filename)
	url, err := h.blobs.Upload(c.Request.Context(), key, storage.ContentTypeForFilename(fileHeader.Filename), file, fileHeader.Size)
	if err != nil {
		h.logger.Error("resume upload failed", zap.Error(err))
		response.Internal(c, "failed to upload resume")
		return
	}

	m := &models.Resume{
		OwnerEmail:   c.GetString(middleware.ContextUserEmail),
		Name:         form.Name,
		Phone:        form.Phone,
		Experience:   form.Experience,
		Skills:       form.Skills,
		S3Key:        key,
		S3URL:        url,
		OriginalName: fileHeader.Filename,
	}
	err = h.resumes.Create(c.Request.Context(), m)
	if errors.Is(err, ErrResumeExists) {
		response.BadRequest(c, "you have already uploaded a resume, only one resume per user is allowed")
		return
	}
	if err != nil {
		h.logger.Error("create resume failed", zap.Error(err))
		response.Internal(c, "failed to submit resume")
		return
	}
	response.Created(c, gin.H{"message": "resume submitted successfully", "s3_url": url})
}

// Apply handles POST /api/jobs/apply. The resume file is optional; the job
// id is not validated against the postings catalog.
func (h *Handler) Apply(c *gin.Context) {
	var form ApplyForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	jobID, err := uuid.Parse(form.JobID)
	if err != nil {
		response.BadRequest(c, "invalid job id")
		return
	}

	a := &models.JobApplication{
		ApplicantEmail: c.GetString(middleware.ContextUserEmail),
		JobID:          jobID,
		JobTitle:       form.JobTitle,
		Company:        form.Company,
		Name:           form.Name,
		Phone:          form.Phone,
		CoverLetter:    form.CoverLetter,
	}

	if fileHeader, err := c.FormFile("resume"); err == nil {
		if h.blobs == nil {
			response.ServiceUnavailable(c, "file storage unavailable")
			return
		}
		if fileHeader.Size > storage.MaxResumeFileSize {
			response.BadRequest(c, "file too large (max 10MB)")
			return
		}
		if !storage.ValidateResumeFileType(fileHeader.Header.Get("Content-Type"), fileHeader.Filename) {
			response.BadRequest(c, "invalid file type, only PDF, DOC and DOCX files are allowed")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			response.BadRequest(c, "failed to open uploaded file")
			return
		}
		defer file.Close()

		key := storage.JobResumeKey(uuid.New().String(), fileHeader.Filename)
		url, err := h.blobs.Upload(c.Request.Context(), key, storage.ContentTypeForFilename(fileHeader.Filename), file, fileHeader.Size)
		if err != nil {
			h.logger.Error("application resume upload failed", zap.Error(err))
			response.Internal(c, "failed to upload resume")
			return
		}
		a.ResumeS3Key = key
		a.ResumeS3URL = url
		a.ResumeOriginalName = fileHeader.Filename
	}

	err = h.applications.Create(c.Request.Context(), a)
	if errors.Is(err, ErrAlreadyApplied) {
		response.BadRequest(c, "you have already applied for this job")
		return
	}
	if err != nil {
		h.logger.Error("create application failed", zap.Error(err))
		response.Internal(c, "failed to submit application")
		return
	}
	response.Created(c, gin.H{"message": "applied successfully"})
}
