package transaction

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/hanqt132-beep/kost-versi2/model"
	ts "github.com/hanqt132-beep/kost-versi2/service/transaction"
)

type Controller struct {
	Svc ts.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/transactions
func (h *Controller) Initiate(c echo.Context) error {
	var req InitiateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid start_date"})
	}

	uid, _ := c.Get("user_id").(int64)
	out, err := h.Svc.Initiate(c.Request().Context(), uid, ts.InitiateReq{
		KostID:    req.KostID,
		Months:    req.Months,
		StartDate: start,
		Plan:      model.PaymentPlan(req.PaymentOption),
	})
	if err != nil {
		h.Log.Error("transaction initiate", "err", err)
		switch ts.Code(err) {
		case ts.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		case ts.ErrKostNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "kost not found"})
		case ts.ErrKostUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "kost unavailable"})
		case ts.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"transaction":    out.Transaction,
		"qr_payload":     out.QRPayload,
		"payment_due_at": out.PaymentDueAt.Format(time.RFC3339),
	})
}

// POST /v1/transactions/:id/select-payment
func (h *Controller) SelectPayment(c echo.Context) error {
	return h.event(c, "select payment", func(uid int64, id string) (*model.Transaction, error) {
		return h.Svc.SelectPayment(c.Request().Context(), uid, id)
	})
}

// POST /v1/transactions/:id/accept-contract
func (h *Controller) AcceptContract(c echo.Context) error {
	return h.event(c, "accept contract", func(uid int64, id string) (*model.Transaction, error) {
		return h.Svc.AcceptContract(c.Request().Context(), uid, id)
	})
}

// POST /v1/transactions/:id/scan
func (h *Controller) Scan(c echo.Context) error {
	var req ScanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	return h.event(c, "scan", func(uid int64, id string) (*model.Transaction, error) {
		return h.Svc.Scan(c.Request().Context(), uid, id, req.QRData)
	})
}

// POST /v1/transactions/:id/confirm
func (h *Controller) Confirm(c echo.Context) error {
	return h.event(c, "confirm", func(uid int64, id string) (*model.Transaction, error) {
		return h.Svc.Confirm(c.Request().Context(), uid, id)
	})
}

// POST /v1/transactions/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	var req CancelReq
	_ = c.Bind(&req)
	return h.event(c, "cancel", func(uid int64, id string) (*model.Transaction, error) {
		return h.Svc.Cancel(c.Request().Context(), uid, id, req.Reason)
	})
}

func (h *Controller) event(c echo.Context, name string, fn func(uid int64, id string) (*model.Transaction, error)) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	t, err := fn(uid, id)
	if err != nil {
		h.Log.Error("transaction "+name, "err", err, "transaction_id", id)
		switch ts.Code(err) {
		case ts.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "transaction not found"})
		case ts.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case ts.ErrInvalidTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "invalid transition"})
		case ts.ErrExpired:
			return c.JSON(http.StatusGone, echo.Map{"message": "payment window elapsed"})
		case ts.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"transaction": t})
}

// GET /v1/transactions/my
func (h *Controller) Mine(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.Mine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("transaction history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/transactions/:id
func (h *Controller) Detail(c echo.Context) error {
	id := c.Param("id")
	uid, _ := c.Get("user_id").(int64)

	t, err := h.Svc.ByID(c.Request().Context(), uid, id)
	if err != nil {
		switch ts.Code(err) {
		case ts.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "transaction not found"})
		case ts.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		default:
			h.Log.Error("transaction detail", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"transaction": t})
}

// GET /v1/admin/transactions
func (h *Controller) All(c echo.Context) error {
	rows, err := h.Svc.All(c.Request().Context())
	if err != nil {
		h.Log.Error("transaction admin list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
