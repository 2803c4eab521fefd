package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/catalog"
	"github.com/jhoicas/Marketplace-api/internal/application/chat"
	"github.com/jhoicas/Marketplace-api/internal/application/link"
	"github.com/jhoicas/Marketplace-api/internal/domain/access"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
	"github.com/jhoicas/Marketplace-api/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	LinkUC    *link.UseCase
	ChatUC    *chat.UseCase
	CatalogUC *catalog.UseCase
	Validator *validator.Validator
	Cookie    CookieConfig
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC, deps.Cookie.Name, log)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, v, deps.Cookie, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register_supplier_member", requireAuth,
		RequireAction(access.ActionRegisterMember, fiber.StatusMethodNotAllowed, log),
		authHandler.RegisterMember)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Get("/team", requireAuth, authHandler.Team)

	// Rutas protegidas (requieren token)
	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.CatalogUC, v, log)
	products.Get("/", productHandler.List)
	products.Get("/by_filter", productHandler.ByFilter)
	products.Post("/add", productHandler.Create)
	products.Put("/update/:id", productHandler.Update)
	products.Delete("/delete/:id", productHandler.Delete)
	products.Get("/supplier/:supplier_id/catalog.pdf", productHandler.CatalogSheet)
	products.Get("/supplier/:supplier_id", productHandler.ListForSupplier)
	products.Get("/:id", productHandler.GetByID)

	links := api.Group("/links", requireAuth)
	linkHandler := NewLinkHandler(deps.LinkUC, log)
	links.Get("/", linkHandler.List)
	links.Get("/suppliers", linkHandler.Suppliers)
	links.Get("/sent", linkHandler.Sent)
	links.Get("/consumers", linkHandler.Consumers)
	links.Get("/received", linkHandler.Received)
	links.Post("/send-request", linkHandler.SendRequest)
	links.Put("/approve-request", linkHandler.ApproveRequest)
	links.Delete("/reject-request", linkHandler.RejectRequest)

	chats := api.Group("/chat", requireAuth)
	chatHandler := NewChatHandler(deps.ChatUC, v, log)
	chats.Get("/", chatHandler.List)
	chats.Get("/:chat_id", chatHandler.Messages)
	chats.Post("/:chat_id", chatHandler.Send)
}

// queryValue copia el parámetro de query. Sin Immutable, Fiber devuelve strings que apuntan
// al buffer de la petición, que se reutiliza en la siguiente.
func queryValue(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.Query(key))
}
