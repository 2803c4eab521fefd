package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/catalog"
	"github.com/jhoicas/Marketplace-api/internal/application/chat"
	"github.com/jhoicas/Marketplace-api/internal/application/link"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/memory"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Marketplace-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Marketplace-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Marketplace-api/internal/interfaces/http"
	"github.com/jhoicas/Marketplace-api/pkg/config"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
	"github.com/jhoicas/Marketplace-api/pkg/validator"
)

// storage repositorios del driver elegido (postgres o memory).
type storage struct {
	users    repository.UserRepository
	links    repository.LinkRepository
	chats    repository.ChatRepository
	messages repository.MessageRepository
	products repository.ProductRepository
	tx       link.TxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Revocación de tokens: sin REDIS_URL el logout solo borra la cookie.
	var revoker auth.TokenRevoker
	if cfg.Redis.URL != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		revoker = infraredis.NewTokenStore(client)
	} else {
		log.Warn().Msg("REDIS_URL vacío: los tokens no se revocan en logout")
	}

	m := metrics.New(cfg.Metrics.Namespace)

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, revoker)
	linkUC := link.NewUseCase(store.tx, store.links, store.users, m, log.Component("links"))
	chatUC := chat.NewUseCase(store.chats, store.messages, m, log.Component("chat"))
	catalogUC := catalog.NewUseCase(store.products, store.links, store.users, infrapdf.NewCatalogSheetGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true, // los ids de query/params se guardan en el store en memoria
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(m.Middleware())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Marketplace API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		LinkUC:    linkUC,
		ChatUC:    chatUC,
		CatalogUC: catalogUC,
		Validator: validator.New(),
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.App.Env == "production",
			MaxAge: time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
		Log: log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			users:    s.Users(),
			links:    s.Links(),
			chats:    s.Chats(),
			messages: s.Messages(),
			products: s.Products(),
			tx:       s,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &storage{
		users:    postgres.NewUserRepository(pool),
		links:    postgres.NewLinkRepository(pool),
		chats:    postgres.NewChatRepository(pool),
		messages: postgres.NewMessageRepository(pool),
		products: postgres.NewProductRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}
