package kost

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/hanqt132-beep/kost-versi2/model"
	ks "github.com/hanqt132-beep/kost-versi2/service/kost"
)

type Controller struct {
	Svc ks.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/kosts
func (h *Controller) List(c echo.Context) error {
	f := model.KostFilter{
		Loc:       c.QueryParam("loc"),
		Type:      c.QueryParam("type"),
		Query:     c.QueryParam("q"),
		PromoOnly: c.QueryParam("promo") == "true",
	}
	if v := c.QueryParam("price_min"); v != "" {
		f.PriceMin, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.QueryParam("price_max"); v != "" {
		f.PriceMax, _ = strconv.ParseInt(v, 10, 64)
	}

	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("kost list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/kosts/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	k, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if ks.Code(err) == ks.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "kost not found"})
		}
		h.Log.Error("kost detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": k})
}

// POST /v1/kosts (admin)
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateKostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	k, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		if ks.Code(err) == ks.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		}
		h.Log.Error("kost create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": k})
}

// PUT /v1/kosts/:id (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req model.UpdateKostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	k, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		switch ks.Code(err) {
		case ks.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "kost not found"})
		case ks.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("kost update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": k})
}

// DELETE /v1/kosts/:id (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if ks.Code(err) == ks.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "kost not found"})
		}
		h.Log.Error("kost delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
