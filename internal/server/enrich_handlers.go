// file: internal/server/enrich_handlers.go
// version: 2.0.0
// guid: 0c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/enrich"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

func (s *Server) enrichDiscogs(c *gin.Context) {
	if s.deps.Discogs == nil {
		RespondWithError(c, http.StatusServiceUnavailable, "discogs is not configured", "DISCOGS_UNAVAILABLE")
		return
	}
	id, err := strconv.ParseInt(c.Param("albumId"), 10, 64)
	if err != nil || id < 1 {
		RespondWithBadRequest(c, "invalid album id")
		return
	}

	result, err := s.deps.Enricher.EnrichFromDiscogs(c.Request.Context(), s.deps.Discogs, id)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			RespondWithNotFound(c, "album")
		case errors.Is(err, enrich.ErrNoRelease):
			RespondWithNotFound(c, "discogs release")
		default:
			RespondWithInternalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) matchThousand(c *gin.Context) {
	result, err := s.deps.Enricher.MatchThousand(c.Request.Context())
	if err != nil {
		if errors.Is(err, enrich.ErrNoThousandList) {
			RespondWithBadRequest(c, err.Error())
			return
		}
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) loadThousandList(c *gin.Context) {
	var entries []models.ThousandEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		RespondWithBadRequest(c, "invalid entry list: "+err.Error())
		return
	}
	if len(entries) == 0 {
		RespondWithBadRequest(c, "entry list is empty")
		return
	}

	if err := s.deps.Enricher.LoadThousandList(c.Request.Context(), entries); err != nil {
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loaded": len(entries)})
}

func (s *Server) listThousandReviews(c *gin.Context) {
	reviews, err := s.deps.Store.ListThousandReviews(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

func (s *Server) saveThousandReview(c *gin.Context) {
	var review models.ThousandReview
	if err := c.ShouldBindJSON(&review); err != nil {
		RespondWithBadRequest(c, "invalid review: "+err.Error())
		return
	}
	if review.AlbumID < 1 || review.EntryID < 1 {
		RespondWithBadRequest(c, "album_id and entry_id are required")
		return
	}
	switch review.Status {
	case "approved", "rejected", "pending":
	default:
		RespondWithBadRequest(c, "status must be approved, rejected or pending")
		return
	}

	if err := s.deps.Store.SaveThousandReview(c.Request.Context(), &review); err != nil {
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
