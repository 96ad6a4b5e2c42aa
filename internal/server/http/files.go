package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

type uploadRequest struct {
	FileName    string `json:"fileName"`
	UserID      string `json:"userId"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type shareRequest struct {
	ExpirationHours int `json:"expirationHours"`
}

type summarizeRequest struct {
	FileName string `json:"file_name"`
	FileID   string `json:"fileId"`
	UserID   string `json:"userId"`
}

// fileView is the wire shape of one catalog entry.
type fileView struct {
	FileID      string `json:"fileId"`
	UserID      string `json:"userId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Folder      string `json:"folder,omitempty"`
	Status      string `json:"status"`
	UploadDate  string `json:"uploadDate"`
}

func toFileView(f *models.File) fileView {
	return fileView{
		FileID:      f.ID,
		UserID:      f.UserID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		Size:        f.Size,
		Folder:      f.Folder,
		Status:      string(f.Status),
		UploadDate:  f.UploadDate.UTC().Format(time.RFC3339),
	}
}

func (s *Server) requestUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID, ok := scopedUserID(c, req.UserID)
	if !ok {
		return
	}

	slot, err := s.files.RequestUpload(c.Request.Context(), userID, req.FileName, req.ContentType, req.Size)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": slot.UploadURL,
		"fileId":    slot.FileID,
		"message":   "Upload URL generated.",
	})
}

func (s *Server) listFiles(c *gin.Context) {
	userID, ok := scopedUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	files, err := s.files.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]fileView, 0, len(files))
	for _, f := range files {
		views = append(views, toFileView(f))
	}

	c.JSON(http.StatusOK, gin.H{"files": views, "count": len(views)})
}

func (s *Server) downloadFile(c *gin.Context) {
	userID, ok := scopedUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	link, err := s.files.Download(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": link.DownloadURL,
		"fileName":    link.FileName,
		"fileId":      link.FileID,
	})
}

func (s *Server) deleteFile(c *gin.Context) {
	userID, ok := scopedUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	fileID := c.Param("id")
	if err := s.files.Delete(c.Request.Context(), userID, fileID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted.", "fileId": fileID})
}

func (s *Server) completeUpload(c *gin.Context) {
	userID, ok := scopedUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	if err := s.files.Complete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Upload confirmed."})
}

func (s *Server) createShare(c *gin.Context) {
	userID, ok := scopedUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	grant, err := s.shares.Create(c.Request.Context(), userID, c.Param("id"), time.Duration(req.ExpirationHours)*time.Hour)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shareUrl":   grant.ShareURL,
		"shareToken": grant.Token,
		"expiresAt":  grant.ExpiresAt.UTC().Format(time.RFC3339),
		"message":    "Share link created.",
	})
}

func (s *Server) resolveShare(c *gin.Context) {
	link, err := s.shares.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": link.DownloadURL,
		"fileName":    link.FileName,
	})
}

func (s *Server) summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.FileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileId is required"})
		return
	}

	userID, ok := scopedUserID(c, req.UserID)
	if !ok {
		return
	}

	res, err := s.summaries.Summarize(c.Request.Context(), userID, req.FileID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":       res.Summary,
		"fileName":      res.FileName,
		"contentLength": res.ContentLength,
		"model":         res.Model,
	})
}
