package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proa/teiacultural/models"
)

// readMedia pulls one optional file field out of a multipart form.
// A missing field yields nil without error.
func readMedia(c *gin.Context, field string) (*models.MediaUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &models.MediaUpload{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

// readMediaSlots reads the four image fields of a publication form.
func readMediaSlots(c *gin.Context) ([models.MediaSlots]*models.MediaUpload, error) {
	var media [models.MediaSlots]*models.MediaUpload
	fields := [models.MediaSlots]string{"image1", "image2", "image3", "image4"}

	for i, field := range fields {
		upload, err := readMedia(c, field)
		if err != nil {
			return media, err
		}
		media[i] = upload
	}
	return media, nil
}
