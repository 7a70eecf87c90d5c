// Package main kost booking API.
//
// @title           Kost Booking API
// @version         1.0
// @description     Kost rental service (listings, favorites, bookings, payments).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/hanqt132-beep/kost-versi2/app/echoServer"
	authctrl "github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/auth"
	bookingctrl "github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/booking"
	favoritectrl "github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/favorite"
	kostctrl "github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/kost"
	paymentctrl "github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/payment"
	txctrl "github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/transaction"
	"github.com/hanqt132-beep/kost-versi2/app/echoServer/validation"
	"github.com/hanqt132-beep/kost-versi2/config"
	bookingrepo "github.com/hanqt132-beep/kost-versi2/repository/booking"
	favoriterepo "github.com/hanqt132-beep/kost-versi2/repository/favorite"
	kostrepo "github.com/hanqt132-beep/kost-versi2/repository/kost"
	qrisrepo "github.com/hanqt132-beep/kost-versi2/repository/qris"
	txrepo "github.com/hanqt132-beep/kost-versi2/repository/transaction"
	userrepo "github.com/hanqt132-beep/kost-versi2/repository/user"
	authsvc "github.com/hanqt132-beep/kost-versi2/service/auth"
	bookingsvc "github.com/hanqt132-beep/kost-versi2/service/booking"
	favoritesvc "github.com/hanqt132-beep/kost-versi2/service/favorite"
	kostsvc "github.com/hanqt132-beep/kost-versi2/service/kost"
	paymentsvc "github.com/hanqt132-beep/kost-versi2/service/payment"
	txsvc "github.com/hanqt132-beep/kost-versi2/service/transaction"
	"github.com/hanqt132-beep/kost-versi2/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	kr := kostrepo.New(db)
	tr := txrepo.New(db)
	br := bookingrepo.New(db)
	fr := favoriterepo.New(db)
	qr := qrisrepo.NewHTTP(cfg.QRISAPIKey, cfg.QRISCallbackToken)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ks := kostsvc.New(kr)
	ts := txsvc.New(db, tr, qr)
	bs := bookingsvc.New(br)
	fs := favoritesvc.New(fr)
	ps := paymentsvc.New(qr, ts)

	// expiry sweep for transactions whose payment window lapsed
	sweeper := txsvc.NewExpirer(tr)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			n, err := sweeper.ExpireOverdue(ctx)
			if err != nil {
				log.Error("expiry sweep failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("expired overdue transactions", "count", n)
			}
		}
	}()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	kostC := &kostctrl.Controller{Svc: ks, V: v, Log: log}
	txC := &txctrl.Controller{Svc: ts, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, Log: log}
	favoriteC := &favoritectrl.Controller{Svc: fs, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Kost:        kostC,
		Transaction: txC,
		Booking:     bookingC,
		Favorite:    favoriteC,
		Payment:     paymentC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
