package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tablegrape/entities"
	"tablegrape/pkg/logbook/repository"
)

// LogbookCtrl exposes the four append-only log writers. Range validation
// happens before any write so a bad request never leaves a partial record.
type LogbookCtrl struct{ repo repository.LogbookRepository }

func New(repo repository.LogbookRepository) *LogbookCtrl { return &LogbookCtrl{repo} }

func orNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now()
}

type scoutingReq struct {
	FarmID     string     `json:"farm_id"`
	BlockID    *string    `json:"block_id"`
	ObservedAt *time.Time `json:"observed_at"`
	PhotoPath  *string    `json:"photo_path"`
	IssueType  string     `json:"issue_type"`
	Severity   int        `json:"severity"`
	Notes      string     `json:"notes"`
}

func (h *LogbookCtrl) CreateScouting(c echo.Context) error {
	var req scoutingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.FarmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	if req.Severity < 0 || req.Severity > 3 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "severity must be between 0 and 3"})
	}
	l := &entities.ScoutingLog{
		FarmID:     req.FarmID,
		BlockID:    req.BlockID,
		ObservedAt: orNow(req.ObservedAt),
		PhotoPath:  req.PhotoPath,
		IssueType:  req.IssueType,
		Severity:   req.Severity,
		Notes:      req.Notes,
	}
	if err := h.repo.CreateScouting(l); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, l)
}

type irrigationReq struct {
	FarmID      string     `json:"farm_id"`
	BlockID     *string    `json:"block_id"`
	IrrigatedAt *time.Time `json:"irrigated_at"`
	AmountMM    *float64   `json:"amount_mm"`
	DurationMin *int       `json:"duration_min"`
	Notes       string     `json:"notes"`
}

func (h *LogbookCtrl) CreateIrrigation(c echo.Context) error {
	var req irrigationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.FarmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	l := &entities.IrrigationLog{
		FarmID:      req.FarmID,
		BlockID:     req.BlockID,
		IrrigatedAt: orNow(req.IrrigatedAt),
		AmountMM:    req.AmountMM,
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	}
	if err := h.repo.CreateIrrigation(l); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, l)
}

type brixReq struct {
	FarmID        string     `json:"farm_id"`
	BlockID       *string    `json:"block_id"`
	SampledAt     *time.Time `json:"sampled_at"`
	Brix          float64    `json:"brix"`
	FirmnessScore *int       `json:"firmness_score"`
	BerrySizeMM   *float64   `json:"berry_size_mm"`
	Notes         string     `json:"notes"`
}

func (h *LogbookCtrl) CreateBrix(c echo.Context) error {
	var req brixReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.FarmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	if req.FirmnessScore != nil && (*req.FirmnessScore < 1 || *req.FirmnessScore > 5) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "firmness_score must be between 1 and 5"})
	}
	s := &entities.BrixSample{
		FarmID:        req.FarmID,
		BlockID:       req.BlockID,
		SampledAt:     orNow(req.SampledAt),
		Brix:          req.Brix,
		FirmnessScore: req.FirmnessScore,
		BerrySizeMM:   req.BerrySizeMM,
		Notes:         req.Notes,
	}
	if err := h.repo.CreateBrix(s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

type sprayReq struct {
	FarmID      string     `json:"farm_id"`
	BlockID     *string    `json:"block_id"`
	SprayedAt   *time.Time `json:"sprayed_at"`
	ProductName string     `json:"product_name"`
	TargetIssue string     `json:"target_issue"`
	PHIDays     *int       `json:"phi_days"`
	REIHours    *int       `json:"rei_hours"`
	Notes       string     `json:"notes"`
}

func (h *LogbookCtrl) CreateSpray(c echo.Context) error {
	var req sprayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.FarmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	l := &entities.SprayLog{
		FarmID:      req.FarmID,
		BlockID:     req.BlockID,
		SprayedAt:   orNow(req.SprayedAt),
		ProductName: req.ProductName,
		TargetIssue: req.TargetIssue,
		PHIDays:     req.PHIDays,
		REIHours:    req.REIHours,
		Notes:       req.Notes,
	}
	if err := h.repo.CreateSpray(l); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, l)
}
