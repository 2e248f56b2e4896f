package controllerImp

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

type HealthCtrl struct {
	db        *gorm.DB
	uploadDir string
}

func New(db *gorm.DB, uploadDir string) *HealthCtrl {
	return &HealthCtrl{db: db, uploadDir: uploadDir}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbCheck := h.pingDB(ctx)
	uploadCheck := h.checkUploadDir()

	allOK := dbCheck.OK && uploadCheck.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": dbCheck,
			"uploads":  uploadCheck,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) checkUploadDir() check {
	info, err := os.Stat(h.uploadDir)
	if err != nil {
		// the scan path creates it on first upload
		if os.IsNotExist(err) {
			return check{OK: true}
		}
		return check{Err: "stat: " + err.Error()}
	}
	if !info.IsDir() {
		return check{Err: "upload path is not a directory"}
	}
	return check{OK: true}
}
