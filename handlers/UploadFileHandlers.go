package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"quotations/services"
	"quotations/storage"
	"quotations/utils"
)

// ServeFile godoc
// @Summary      Serve stored file
// @Description  Streams a stored artifact such as a generated quotation PDF
// @Tags         files
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        file  query  string  true  "Stored file name, e.g. quotations/RLE-107_Quotation.pdf"
// @Success      200  {file}    file  "File"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/get-file [get]
func ServeFile(store *storage.LocalStore, svc *services.QuotationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileName := c.Query("file")
		if fileName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file parameter is required"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		err := svc.AuthorizeFile(ctx, actorFrom(c), fileName)
		cancel()
		if err != nil {
			respondError(c, err, "Failed to check file access")
			return
		}

		file, err := store.Open(fileName)
		switch {
		case errors.Is(err, storage.ErrInvalidPath):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file path"})
			return
		case errors.Is(err, storage.ErrNoSuchFile):
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		defer file.Close()

		// Read a small portion of the file to detect its MIME type
		buffer := make([]byte, 512)
		n, _ := file.Read(buffer)
		contentType := http.DetectContentType(buffer[:n])
		if _, err := file.Seek(0, 0); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		info, err := file.Stat()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.Header("Content-Disposition", "inline; filename=\""+filepath.Base(fileName)+"\"")
		c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
	}
}
