package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tablegrape/entities"
	farmrepo "tablegrape/pkg/farm/repository"
	"tablegrape/pkg/status/repository"
)

type StatusCtrl struct {
	repo  repository.StatusRepository
	farms farmrepo.FarmRepository
}

func New(repo repository.StatusRepository, farms farmrepo.FarmRepository) *StatusCtrl {
	return &StatusCtrl{repo: repo, farms: farms}
}

type createStatusReq struct {
	FarmID         string     `json:"farm_id"`
	BlockID        *string    `json:"block_id"`
	RecordedAt     *time.Time `json:"recorded_at"`
	Stage          string     `json:"stage"`
	SweetnessBrix  *float64   `json:"sweetness_brix"`
	Cracking       bool       `json:"cracking"`
	Sunburn        bool       `json:"sunburn"`
	MildewSigns    bool       `json:"mildew_signs"`
	BotrytisSigns  bool       `json:"botrytis_signs"`
	PestSigns      bool       `json:"pest_signs"`
	LastIrrigation string     `json:"last_irrigation"`
	LastSpray      string     `json:"last_spray"`
	Notes          string     `json:"notes"`
}

func (h *StatusCtrl) Create(c echo.Context) error {
	var req createStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.FarmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	if _, err := h.farms.FindByID(req.FarmID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}

	recordedAt := time.Now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	s := &entities.CropStatus{
		FarmID:         req.FarmID,
		BlockID:        req.BlockID,
		RecordedAt:     recordedAt,
		Stage:          req.Stage,
		SweetnessBrix:  req.SweetnessBrix,
		Cracking:       req.Cracking,
		Sunburn:        req.Sunburn,
		MildewSigns:    req.MildewSigns,
		BotrytisSigns:  req.BotrytisSigns,
		PestSigns:      req.PestSigns,
		LastIrrigation: req.LastIrrigation,
		LastSpray:      req.LastSpray,
		Notes:          req.Notes,
	}
	if err := h.repo.Create(s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *StatusCtrl) Latest(c echo.Context) error {
	farmID := c.QueryParam("farm_id")
	if farmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	var blockID *string
	if b := c.QueryParam("block_id"); b != "" {
		blockID = &b
	}
	latest, err := h.repo.Latest(farmID, blockID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, latest) // null when the farm has no check-ins
}
