package productcontroller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errPhotoTooLarge = errors.New("photo is too large")

// readPhoto loads an optional multipart photo into memory. A missing field
// returns nil data and no error.
func readPhoto(c *gin.Context, field string, maxBytes int64) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", err
	}
	if fileHeader.Size > maxBytes {
		return nil, "", fmt.Errorf("%w: %d bytes, limit %d", errPhotoTooLarge, fileHeader.Size, maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > maxBytes {
		return nil, "", errPhotoTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// servePhoto writes a stored blob back with its content type.
func servePhoto(c *gin.Context, data []byte, contentType string) {
	if len(data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Photo not found"})
		return
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, contentType, data)
}
