package favorite

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	fs "github.com/hanqt132-beep/kost-versi2/service/favorite"
)

type Controller struct {
	Svc fs.Service
	Log *slog.Logger
}

// POST /v1/favorites/:kostId/toggle
func (h *Controller) Toggle(c echo.Context) error {
	kostID, err := strconv.ParseInt(c.Param("kostId"), 10, 64)
	if err != nil || kostID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	fav, err := h.Svc.Toggle(c.Request().Context(), uid, kostID)
	if err != nil {
		h.Log.Error("favorite toggle", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"kost_id": kostID, "favorite": fav})
}

// GET /v1/favorites
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.List(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("favorite list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/favorites
func (h *Controller) Clear(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	n, err := h.Svc.Clear(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("favorite clear", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cleared", "deleted": n})
}
