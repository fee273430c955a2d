package main

import (
	"os"
	"time"

	"app/internal/auth"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/mail"
	"app/internal/payment"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(email string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは開発用。なければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.GoEnv == "dev" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Collection{},
		&model.Order{},
		&model.OrderItem{},
		&model.StorePromotion{},
		&model.PromoBanner{},
		&model.BuySet{},
		&model.AdminMessage{},
		&model.NewsletterSubscriber{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	promoRepo := infraRepo.NewPromotionGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	collectionRepo := infraRepo.NewCollectionGormRepository(gormDB)
	newsletterRepo := infraRepo.NewNewsletterGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	bannerRepo := infraRepo.NewBannerGormRepository(gormDB)
	buySetRepo := infraRepo.NewBuySetGormRepository(gormDB)
	messageRepo := infraRepo.NewMessageGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部サービス
	provider := payment.NewClient(cfg.PaymentAPIBase, cfg.PaymentSecretKey, 15*time.Second)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	google := auth.NewGoogleClient(10 * time.Second)

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, promoRepo, auditRepo)
	collectionUC := usecase.NewCollectionUsecase(collectionRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, productRepo, userRepo, promoRepo, provider, mailer, log, cfg.ClientURL)
	webhookUC := usecase.NewWebhookUsecase(orderRepo, orderItemRepo, inventoryRepo, userRepo, provider, mailer, log, cfg.PaymentSecretKey, cfg.AdminEmail)
	promotionUC := usecase.NewPromotionUsecase(promoRepo, productRepo)
	bannerUC := usecase.NewBannerUsecase(bannerRepo, productRepo)
	buySetUC := usecase.NewBuySetUsecase(buySetRepo, productRepo)
	messageUC := usecase.NewMessageUsecase(messageRepo, auditRepo)
	userUC := usecase.NewUserUsecase(userRepo, orderRepo, orderItemRepo, collectionRepo, auditRepo, google, issuer)
	newsletterUC := usecase.NewNewsletterUsecase(newsletterRepo)
	dashboardUC := usecase.NewDashboardUsecase(orderRepo, userRepo)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成
	handlers := server.Handlers{
		Product:        handler.NewProductHandler(productUC, buySetUC),
		Collection:     handler.NewCollectionHandler(collectionUC),
		Delivery:       handler.NewDeliveryHandler(),
		Order:          handler.NewOrderHandler(orderUC, cfg.AdminEmail),
		Webhook:        handler.NewWebhookHandler(webhookUC),
		Auth:           handler.NewAuthHandler(userUC),
		Newsletter:     handler.NewNewsletterHandler(newsletterUC),
		Promotion:      handler.NewPromotionHandler(promotionUC, bannerUC),
		Message:        handler.NewMessageHandler(messageUC),
		AdminOrder:     handler.NewAdminOrderHandler(orderUC),
		AdminProduct:   handler.NewAdminProductHandler(productUC, collectionUC, buySetUC),
		AdminPromotion: handler.NewAdminPromotionHandler(promotionUC, bannerUC),
		AdminUser:      handler.NewAdminUserHandler(userUC, auditUC),
		AdminDashboard: handler.NewAdminDashboardHandler(dashboardUC, newsletterUC),
	}

	//Server起動
	e := server.New(cfg, log, handlers)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
