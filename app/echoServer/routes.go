package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/auth"
	"github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/booking"
	"github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/favorite"
	"github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/kost"
	"github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/payment"
	"github.com/hanqt132-beep/kost-versi2/app/echoServer/controller/transaction"
)

type C struct {
	Auth        *auth.Controller
	Kost        *kost.Controller
	Transaction *transaction.Controller
	Booking     *booking.Controller
	Favorite    *favorite.Controller
	Payment     *payment.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// gateway callback
	pub.POST("/payment/qris", c.Payment.HandleQRIS)

	// Authenticated
	authG := e.Group("/v1")
	authG.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	authG.Use(extractClaims)

	// Kosts (read)
	authG.GET("/kosts", c.Kost.List)
	authG.GET("/kosts/:id", c.Kost.Detail)

	// Favorites
	authG.POST("/favorites/:kostId/toggle", c.Favorite.Toggle)
	authG.GET("/favorites", c.Favorite.List)
	authG.DELETE("/favorites", c.Favorite.Clear)

	// Transactions
	authG.POST("/transactions", c.Transaction.Initiate)
	authG.POST("/transactions/:id/select-payment", c.Transaction.SelectPayment)
	authG.POST("/transactions/:id/accept-contract", c.Transaction.AcceptContract)
	authG.POST("/transactions/:id/scan", c.Transaction.Scan)
	authG.POST("/transactions/:id/confirm", c.Transaction.Confirm)
	authG.POST("/transactions/:id/cancel", c.Transaction.Cancel)
	authG.GET("/transactions/my", c.Transaction.Mine)
	authG.GET("/transactions/:id", c.Transaction.Detail)

	// Bookings
	authG.GET("/bookings/my", c.Booking.Mine)
	authG.DELETE("/bookings/my", c.Booking.Clear)

	// Admin
	adm := authG.Group("/admin", requireAdmin)
	adm.POST("/kosts", c.Kost.Create)
	adm.PUT("/kosts/:id", c.Kost.Update)
	adm.DELETE("/kosts/:id", c.Kost.Delete)
	adm.GET("/transactions", c.Transaction.All)
}

// extractClaims pulls user_id and user_role out of the verified token so
// handlers don't touch jwt types.
func extractClaims(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		tok, ok := ctx.Get("user").(*jwt.Token)
		if !ok || tok == nil {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		ctx.Set("user_id", int64(sub))
		if role, ok := claims["role"].(string); ok {
			ctx.Set("user_role", role)
		}
		return next(ctx)
	}
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if role, _ := ctx.Get("user_role").(string); role != "admin" {
			return ctx.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
		return next(ctx)
	}
}
