package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tablegrape/pkg/chat"
	farmrepo "tablegrape/pkg/farm/repository"
)

type ChatCtrl struct {
	farms farmrepo.FarmRepository
	svc   *chat.Service
}

func New(farms farmrepo.FarmRepository, svc *chat.Service) *ChatCtrl {
	return &ChatCtrl{farms: farms, svc: svc}
}

type messageReq struct {
	FarmID    string `json:"farm_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Lang      string `json:"lang"`
}

func (h *ChatCtrl) SendMessage(c echo.Context) error {
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.FarmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}
	farm, err := h.farms.FindByID(req.FarmID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}

	reply, sessionID, err := h.svc.SendMessage(c.Request().Context(), farm, req.SessionID, req.Message, req.Lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"reply": reply, "session_id": sessionID})
}

func (h *ChatCtrl) History(c echo.Context) error {
	farmID := c.QueryParam("farm_id")
	if farmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	if _, err := h.farms.FindByID(farmID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}

	limit := 30
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be between 1 and 100"})
		}
		limit = n
	}

	msgs, err := h.svc.History(farmID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *ChatCtrl) ClearHistory(c echo.Context) error {
	farmID := c.QueryParam("farm_id")
	if farmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	if _, err := h.farms.FindByID(farmID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}

	deleted, err := h.svc.Clear(farmID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
