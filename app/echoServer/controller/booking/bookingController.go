package booking

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	bs "github.com/hanqt132-beep/kost-versi2/service/booking"
)

type Controller struct {
	Svc bs.Service
	Log *slog.Logger
}

// GET /v1/bookings/my
func (h *Controller) Mine(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.Mine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("booking history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/bookings/my
func (h *Controller) Clear(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	n, err := h.Svc.Clear(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("booking clear", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cleared", "deleted": n})
}
