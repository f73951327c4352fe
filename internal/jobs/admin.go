package jobs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// JobRequest is the body for POST /api/jobs (admin).
type JobRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	Experience  string `json:"experience"`
	Skills      string `json:"skills"`
	Description string `json:"description"`
}

// CreateJob handles POST /api/jobs (admin only).
func (h *Handler) CreateJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	j := models.Job{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Experience:  req.Experience,
		Skills:      req.Skills,
		Description: req.Description,
	}
	if err := h.repo.Create(c.Request.Context(), &j); err != nil {
		h.logger.Error("create job failed", zap.Error(err))
		response.Internal(c, "failed to create job")
		return
	}
	response.Created(c, j)
}

// DeleteJob handles DELETE /api/jobs/:id (admin only).
func (h *Handler) DeleteJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid job id")
		return
	}
	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrJobNotFound) {
		response.NotFound(c, ErrJobNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("delete job failed", zap.Error(err))
		response.Internal(c, "failed to delete job")
		return
	}
	response.OK(c, gin.H{"message": "job deleted successfully"})
}

// ImportJobs handles POST /api/jobs/import (admin only). CSV rows are
// appended to the catalog.
func (h *Handler) ImportJobs(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "no file uploaded")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to open uploaded file")
		return
	}
	defer file.Close()

	list, err := ParseJobsCSV(file)
	if err != nil {
		response.BadRequest(c, "csv parsing failed: "+err.Error())
		return
	}
	inserted, err := h.repo.CreateMany(c.Request.Context(), list)
	if err != nil {
		h.logger.Error("import jobs failed", zap.Error(err))
		response.Internal(c, "failed to save jobs")
		return
	}
	response.OK(c, gin.H{"message": fmt.Sprintf("%d jobs uploaded successfully", inserted)})
}

// ListResumes handles GET /api/jobs/admin/resumes.
func (h *Handler) ListResumes(c *gin.Context) {
	list, err := h.resumes.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list resumes failed", zap.Error(err))
		response.Internal(c, "failed to fetch resumes")
		return
	}
	response.OK(c, list)
}

// ListApplications handles GET /api/jobs/admin/applications.
func (h *Handler) ListApplications(c *gin.Context) {
	list, err := h.applications.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list applications failed", zap.Error(err))
		response.Internal(c, "failed to fetch applications")
		return
	}
	response.OK(c, list)
}

// DeleteApplication handles DELETE /api/jobs/applications/:id (admin only).
// The attached resume blob, if any, is removed best-effort after the row.
func (h *Handler) DeleteApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	a, err := h.applications.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrApplicationNotFound) {
		response.NotFound(c, ErrApplicationNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("get application failed", zap.Error(err))
		response.Internal(c, "failed to delete job application")
		return
	}
	if err := h.applications.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete application failed", zap.Error(err))
		response.Internal(c, "failed to delete job application")
		return
	}
	if a.ResumeS3Key != "" && h.blobs != nil {
		if err := h.blobs.DeleteObject(c.Request.Context(), a.ResumeS3Key); err != nil {
			h.logger.Warn("delete application resume blob failed", zap.String("key", a.ResumeS3Key), zap.Error(err))
		}
	}
	response.OK(c, gin.H{"message": "job application deleted successfully"})
}

// DownloadResume handles GET /api/jobs/admin/download/resume/:id. Redirects
// to a presigned S3 URL.
func (h *Handler) DownloadResume(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid resume id")
		return
	}
	m, err := h.resumes.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrResumeNotFound) {
		response.NotFound(c, ErrResumeNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("get resume failed", zap.Error(err))
		response.Internal(c, "failed to get resume")
		return
	}
	h.redirectToBlob(c, m.S3Key, m.S3URL)
}

// DownloadApplicationResume handles GET /api/jobs/admin/download/application/:id.
func (h *Handler) DownloadApplicationResume(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid application id")
		return
	}
	a, err := h.applications.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrApplicationNotFound) {
		response.NotFound(c, ErrApplicationNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("get application failed", zap.Error(err))
		response.Internal(c, "failed to get application resume")
		return
	}
	if a.ResumeS3Key == "" && a.ResumeS3URL == "" {
		response.NotFound(c, "no resume found for this application")
		return
	}
	h.redirectToBlob(c, a.ResumeS3Key, a.ResumeS3URL)
}

// ExportResumes handles GET /api/jobs/admin/export/resumes.
func (h *Handler) ExportResumes(c *gin.Context) {
	list, err := h.resumes.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("export resumes failed", zap.Error(err))
		response.Internal(c, "failed to export resumes")
		return
	}

	writeCSVHeader(c, "resumes-export")
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ID", "OwnerEmail", "Name", "Phone", "Experience", "Skills", "UploadDate", "OriginalFilename", "S3DownloadLink"})
	for _, m := range list {
		_ = w.Write([]string{
			m.ID.String(), m.OwnerEmail, m.Name, m.Phone, m.Experience, m.Skills,
			m.CreatedAt.UTC().Format(time.RFC3339), m.OriginalName, m.S3URL,
		})
	}
	w.Flush()
}

// ExportApplications handles GET /api/jobs/admin/export/applications.
func (h *Handler) ExportApplications(c *gin.Context) {
	list, err := h.applications.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("export applications failed", zap.Error(err))
		response.Internal(c, "failed to export applications")
		return
	}

	writeCSVHeader(c, "job-applications")
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"ID", "JobTitle", "Company", "ApplicantEmail", "Name", "Phone", "AppliedDate", "ResumeFile", "ResumeDownloadURL", "CoverLetter"})
	for _, a := range list {
		_ = w.Write([]string{
			a.ID.String(), a.JobTitle, a.Company, a.ApplicantEmail, a.Name, a.Phone,
			a.CreatedAt.UTC().Format(time.RFC3339), a.ResumeOriginalName, a.ResumeS3URL, a.CoverLetter,
		})
	}
	w.Flush()
}

// redirectToBlob prefers a presigned URL when the S3 client is available,
// falling back to the URL stored at upload time.
func (h *Handler) redirectToBlob(c *gin.Context, key, storedURL string) {
	if h.blobs != nil && key != "" {
		url, err := h.blobs.GeneratePresignedDownloadURL(c.Request.Context(), key, h.blobs.PresignExpire())
		if err == nil {
			c.Redirect(http.StatusFound, url)
			return
		}
		h.logger.Warn("presign download failed, falling back to stored url", zap.Error(err))
	}
	if storedURL == "" {
		response.NotFound(c, "resume file not available")
		return
	}
	c.Redirect(http.StatusFound, storedURL)
}

func writeCSVHeader(c *gin.Context, prefix string) {
	filename := fmt.Sprintf("%s-%s.csv", prefix, time.Now().UTC().Format("2006-01-02T15-04-05"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Status(http.StatusOK)
}
