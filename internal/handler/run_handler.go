package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/pace-analyzer/internal/middleware"
	"github.com/jengzang/pace-analyzer/internal/models"
	"github.com/jengzang/pace-analyzer/internal/repository"
	"github.com/jengzang/pace-analyzer/internal/service"
	"github.com/jengzang/pace-analyzer/pkg/response"
)

// RunHandler handles HTTP requests for runs
type RunHandler struct {
	service        *service.RunService
	maxUploadBytes int64
}

// NewRunHandler creates a new run handler
func NewRunHandler(service *service.RunService, maxUploadBytes int64) *RunHandler {
	return &RunHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Analyze handles POST /api/v1/runs/analyze and responds 201 with the stored run
func (h *RunHandler) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "Upload too large", err)
			return
		}
		response.BadRequest(c, "Missing GPX file", err)
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".gpx") {
		response.BadRequest(c, "Only .gpx files are accepted", fmt.Errorf("unexpected file %q", fh.Filename))
		return
	}

	opts, err := parseAnalyzeOptions(c)
	if err != nil {
		response.BadRequest(c, "Invalid analysis parameters", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, "Failed to read upload", err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(c, "Failed to read upload", err)
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), middleware.GetUserID(c), fh.Filename, data, opts)
	if err != nil {
		if service.IsInvalidInput(err) {
			response.BadRequest(c, "Could not analyze GPX file", err)
			return
		}
		response.InternalError(c, "Failed to analyze run", err)
		return
	}

	response.Created(c, result)
}

func parseAnalyzeOptions(c *gin.Context) (service.AnalyzeOptions, error) {
	var opts service.AnalyzeOptions

	raw := c.PostForm("paceLimit")
	if raw == "" {
		return opts, errors.New("paceLimit is required")
	}
	pace, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return opts, fmt.Errorf("paceLimit must be a number: %w", err)
	}
	opts.PaceLimit = pace

	if opts.Age, err = optionalInt(c, "age"); err != nil {
		return opts, err
	}
	if opts.RestingHR, err = optionalInt(c, "restingHR"); err != nil {
		return opts, err
	}
	return opts, nil
}

func optionalInt(c *gin.Context, field string) (*int, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer", field)
	}
	return &v, nil
}

// ListRuns handles GET /api/v1/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	var filter models.RunFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	runs, err := h.service.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		response.InternalError(c, "Failed to list runs", err)
		return
	}

	response.Success(c, runs)
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	run, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, "Run not found")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to get run", err)
		return
	}

	response.Success(c, run)
}

// DeleteRun handles DELETE /api/v1/runs/:id
func (h *RunHandler) DeleteRun(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), middleware.GetUserID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, "Run not found")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to delete run", err)
		return
	}

	response.Success(c, gin.H{"id": id})
}

func runID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid run ID", err)
		return 0, false
	}
	return id, true
}
