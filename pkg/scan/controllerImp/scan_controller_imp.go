package controllerImp

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	farmrepo "tablegrape/pkg/farm/repository"
	"tablegrape/pkg/scan"
)

type ScanCtrl struct {
	farms farmrepo.FarmRepository
	svc   *scan.Service
}

func New(farms farmrepo.FarmRepository, svc *scan.Service) *ScanCtrl {
	return &ScanCtrl{farms: farms, svc: svc}
}

// Scan accepts a multipart upload and returns the analysis. All validation
// runs before the upload is written.
func (h *ScanCtrl) Scan(c echo.Context) error {
	farmID := c.FormValue("farm_id")
	if farmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	farm, err := h.farms.FindByID(farmID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "File must be an image"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to read image"})
	}
	defer src.Close()
	image, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to read image"})
	}

	var blockID *string
	if b := c.FormValue("block_id"); b != "" {
		blockID = &b
	}

	result, err := h.svc.Analyze(
		c.Request().Context(),
		farm,
		blockID,
		image,
		fh.Filename,
		c.FormValue("notes"),
		c.FormValue("lang"),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save image"})
	}
	return c.JSON(http.StatusOK, result)
}
