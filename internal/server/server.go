package server

import (
	"time"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Handlersはルート登録に必要なハンドラ一式
type Handlers struct {
	Product        *handler.ProductHandler
	Collection     *handler.CollectionHandler
	Delivery       *handler.DeliveryHandler
	Order          *handler.OrderHandler
	Webhook        *handler.WebhookHandler
	Auth           *handler.AuthHandler
	Newsletter     *handler.NewsletterHandler
	Promotion      *handler.PromotionHandler
	Message        *handler.MessageHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminProduct   *handler.AdminProductHandler
	AdminPromotion *handler.AdminPromotionHandler
	AdminUser      *handler.AdminUserHandler
	AdminDashboard *handler.AdminDashboardHandler
}

func New(cfg config.Config, log zerolog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.ClientURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	h.Product.RegisterRoutes(e)
	h.Collection.RegisterRoutes(e)
	h.Delivery.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, cfg)
	h.Webhook.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e, cfg)
	h.Newsletter.RegisterRoutes(e)
	h.Promotion.RegisterRoutes(e)
	h.Message.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminPromotion.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
	h.AdminDashboard.RegisterRoutes(e, cfg)

	return e
}

// アクセスログ。1リクエスト1行。
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return err
		}
	}
}
