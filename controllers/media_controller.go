package controllers

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/auswindowshrouds/awsbackend/storage"
	"github.com/gin-gonic/gin"
)

// UploadMedia (admin)
// POST /admin/media
// multipart/form-data with a single "file" part. Intended for blog images
// and other standalone assets, so only images are accepted here.
func UploadMedia(objects storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
		}
		if !strings.HasPrefix(ct, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are allowed"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "open file failed"})
			return
		}
		defer f.Close()

		key := storage.ObjectKey("media", fh.Filename)
		if _, err := objects.Upload(ctx, key, f, ct); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"key": key,
			"url": objects.PublicURL(key),
		})
	}
}
