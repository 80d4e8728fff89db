package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadBytes caps every upload at 5 MB, checked before the file touches
// disk.
const maxUploadBytes = 5 << 20

// uploadRule pairs the accepted extensions with the MIME types the file
// content must sniff as. Extension and content are checked independently.
type uploadRule struct {
	exts  []string
	mimes []string
}

var (
	imageRule = uploadRule{
		exts:  []string{".jpg", ".jpeg", ".png"},
		mimes: []string{"image/jpeg", "image/png"},
	}
	pdfRule = uploadRule{
		exts:  []string{".pdf"},
		mimes: []string{"application/pdf"},
	}
	// CSV files saved by spreadsheet tools routinely sniff as plain text.
	csvRule = uploadRule{
		exts:  []string{".csv"},
		mimes: []string{"text/csv", "text/plain"},
	}
)

func (r uploadRule) allowsExt(ext string) bool {
	for _, e := range r.exts {
		if e == ext {
			return true
		}
	}
	return false
}

func (r uploadRule) allowsMime(detected *mimetype.MIME) bool {
	for _, m := range r.mimes {
		if detected.Is(m) {
			return true
		}
	}
	return false
}

// UploadSingle is the handler for POST /upload/single (authenticated). It
// accepts a jpg/jpeg/png image in the "file" form field.
func (h *Handlers) UploadSingle(c *gin.Context) {
	h.relayUpload(c, "file", imageRule)
}

// UploadPDF is the handler for POST /upload/pdf (authenticated). It accepts a
// PDF document in the "pdfFile" form field.
func (h *Handlers) UploadPDF(c *gin.Context) {
	h.relayUpload(c, "pdfFile", pdfRule)
}

// UploadCSV is the handler for POST /upload/csv (authenticated). It accepts a
// CSV file in the "csvFile" form field.
func (h *Handlers) UploadCSV(c *gin.Context) {
	h.relayUpload(c, "csvFile", csvRule)
}

// relayUpload stages the multipart file on local disk, verifies size,
// extension and sniffed content type against the rule, pushes it to object
// storage and returns the public URL. The staged copy is removed on every
// path out.
func (h *Handlers) relayUpload(c *gin.Context, field string, rule uploadRule) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("No file uploaded in field %q", field))
		return
	}

	if fileHeader.Size > maxUploadBytes {
		respondError(c, http.StatusBadRequest, "File too large. Maximum size is 5MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !rule.allowsExt(ext) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("File type %s is not allowed", ext))
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		h.Log.Error("creating upload dir", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not store the uploaded file")
		return
	}

	tmpPath := filepath.Join(h.UploadDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		h.Log.Error("saving upload", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not store the uploaded file")
		return
	}
	defer os.Remove(tmpPath)

	// A failed sniff is our problem: the server staged this file itself.
	detected, err := mimetype.DetectFile(tmpPath)
	if err != nil {
		h.Log.Error("sniffing upload", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Could not store the uploaded file")
		return
	}
	if !rule.allowsMime(detected) {
		respondError(c, http.StatusBadRequest, "File content does not match the allowed types")
		return
	}

	key := fmt.Sprintf("uploads/%d-%s", time.Now().UnixMilli(), sanitizeFilename(fileHeader.Filename))
	url, err := h.Storage.Upload(c.Request.Context(), tmpPath, key, detected.String())
	if err != nil {
		h.Log.Error("uploading to object storage", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Upload failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Upload successful",
		"url":     url,
	})
}

// sanitizeFilename lowercases the original name and collapses whitespace to
// dashes so the object key stays URL friendly.
func sanitizeFilename(name string) string {
	name = strings.ToLower(filepath.Base(name))
	return strings.Join(strings.Fields(name), "-")
}
