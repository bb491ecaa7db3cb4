// file: internal/server/albums.go
// version: 2.0.0
// guid: 7f8a9b0c-1d2e-3f4a-5b6c-7d8e9f0a1b2c

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

func albumIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		RespondWithBadRequest(c, "invalid album id")
		return 0, false
	}
	return id, true
}

func (s *Server) listAlbums(c *gin.Context) {
	var req models.AlbumListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RespondWithBadRequest(c, "invalid list parameters: "+err.Error())
		return
	}

	resp, err := s.deps.Store.ListAlbums(c.Request.Context(), req)
	if err != nil {
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getAlbum(c *gin.Context) {
	id, ok := albumIDParam(c, "id")
	if !ok {
		return
	}

	album, err := s.deps.Store.GetAlbum(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			RespondWithNotFound(c, "album")
			return
		}
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func (s *Server) createAlbum(c *gin.Context) {
	var album models.Album
	if err := c.ShouldBindJSON(&album); err != nil {
		RespondWithBadRequest(c, "invalid album: "+err.Error())
		return
	}
	if album.Artist == "" || album.Title == "" {
		RespondWithBadRequest(c, "artist and title are required")
		return
	}

	id, err := s.deps.Store.CreateAlbum(c.Request.Context(), &album)
	if err != nil {
		RespondWithInternalError(c, err)
		return
	}
	album.ID = id
	c.JSON(http.StatusCreated, album)
}

func (s *Server) updateAlbum(c *gin.Context) {
	id, ok := albumIDParam(c, "id")
	if !ok {
		return
	}

	var album models.Album
	if err := c.ShouldBindJSON(&album); err != nil {
		RespondWithBadRequest(c, "invalid album: "+err.Error())
		return
	}
	album.ID = id

	if err := s.deps.Store.UpdateAlbum(c.Request.Context(), &album); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			RespondWithNotFound(c, "album")
			return
		}
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func (s *Server) deleteAlbum(c *gin.Context) {
	id, ok := albumIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.deps.Store.DeleteAlbum(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			RespondWithNotFound(c, "album")
			return
		}
		RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
