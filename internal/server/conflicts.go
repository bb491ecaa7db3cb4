// file: internal/server/conflicts.go
// version: 2.0.0
// guid: 9b0c1d2e-3f4a-5b6c-7d8e-9f0a1b2c3d4e

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/importer"
	"github.com/cratekeeper/cratekeeper/internal/metrics"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

type resolveRequest struct {
	Resolution models.ResolutionKind `json:"resolution" binding:"required"`
}

func conflictIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		RespondWithBadRequest(c, "invalid conflict id")
		return 0, false
	}
	return id, true
}

func (s *Server) listConflicts(c *gin.Context) {
	conflicts, err := s.deps.Store.ListConflicts(c.Request.Context())
	if err != nil {
		RespondWithInternalError(c, err)
		return
	}
	metrics.SetPendingConflicts(len(conflicts))
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts, "count": len(conflicts)})
}

func (s *Server) resolveConflict(c *gin.Context) {
	id, ok := conflictIDParam(c)
	if !ok {
		return
	}

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "resolution is required")
		return
	}
	switch req.Resolution {
	case models.KeepCurrent, models.UseNew, models.Merge:
	default:
		RespondWithBadRequest(c, "invalid resolution: must be keep_current, use_new or merge")
		return
	}

	resolution, err := s.deps.Importer.Resolve(c.Request.Context(), id, req.Resolution)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			RespondWithNotFound(c, "conflict")
		case errors.Is(err, importer.ErrStaleConflict):
			RespondWithConflict(c, err.Error())
		case errors.Is(err, importer.ErrCannotMerge):
			RespondWithBadRequest(c, err.Error())
		default:
			RespondWithInternalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, resolution)
}

func (s *Server) dismissConflict(c *gin.Context) {
	id, ok := conflictIDParam(c)
	if !ok {
		return
	}

	if err := s.deps.Importer.Dismiss(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			RespondWithNotFound(c, "conflict")
			return
		}
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": id})
}
