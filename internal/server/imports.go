// file: internal/server/imports.go
// version: 2.0.0
// guid: 8a9b0c1d-2e3f-4a5b-6c7d-8e9f0a1b2c3d

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cratekeeper/cratekeeper/internal/clz"
	"github.com/cratekeeper/cratekeeper/internal/importer"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

const maxImportUpload = 64 << 20 // 64MB

func updateModeParam(c *gin.Context) (models.UpdateMode, bool) {
	mode := models.UpdateMode(c.DefaultQuery("mode", string(models.UpdateAll)))
	switch mode {
	case models.UpdateAll, models.UpdateMissingOnly:
		return mode, true
	default:
		RespondWithBadRequest(c, "invalid mode: must be update_all or update_missing_only")
		return "", false
	}
}

func (s *Server) parseCLZUpload(c *gin.Context) ([]models.Album, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondWithBadRequest(c, "missing file upload")
		return nil, false
	}
	defer file.Close()

	if header.Size > maxImportUpload {
		RespondWithBadRequest(c, "upload too large")
		return nil, false
	}

	records, err := clz.Parse(file)
	if err != nil {
		if errors.Is(err, clz.ErrNoMusicData) {
			RespondWithBadRequest(c, "not a CLZ music export: "+err.Error())
			return nil, false
		}
		RespondWithBadRequest(c, "failed to parse export: "+err.Error())
		return nil, false
	}
	return records, true
}

func (s *Server) importCLZ(c *gin.Context) {
	mode, ok := updateModeParam(c)
	if !ok {
		return
	}
	records, ok := s.parseCLZUpload(c)
	if !ok {
		return
	}

	result, err := s.deps.Importer.Run(c.Request.Context(), models.SourceCLZ, records, importer.Options{Mode: mode})
	if err != nil {
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) previewCLZ(c *gin.Context) {
	mode, ok := updateModeParam(c)
	if !ok {
		return
	}
	records, ok := s.parseCLZUpload(c)
	if !ok {
		return
	}

	preview, err := s.deps.Importer.Preview(c.Request.Context(), models.SourceCLZ, records, mode)
	if err != nil {
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (s *Server) importDiscogs(c *gin.Context) {
	if s.deps.Discogs == nil {
		RespondWithError(c, http.StatusServiceUnavailable, "discogs is not configured", "DISCOGS_UNAVAILABLE")
		return
	}
	mode, ok := updateModeParam(c)
	if !ok {
		return
	}
	username := c.DefaultQuery("username", s.username)
	if username == "" {
		RespondWithBadRequest(c, "discogs username is required")
		return
	}

	records, err := s.deps.Discogs.FetchCollection(c.Request.Context(), username)
	if err != nil {
		RespondWithError(c, http.StatusBadGateway, "discogs fetch failed: "+err.Error(), "DISCOGS_ERROR")
		return
	}

	result, err := s.deps.Importer.Run(c.Request.Context(), models.SourceDiscogs, records, importer.Options{Mode: mode})
	if err != nil {
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) listImportRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		RespondWithBadRequest(c, "invalid limit")
		return
	}

	runs, err := s.deps.Store.ListImportRuns(c.Request.Context(), limit)
	if err != nil {
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imports": runs, "count": len(runs)})
}
