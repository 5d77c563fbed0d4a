package routes

import (
	"github.com/gin-gonic/gin"

	"bookkeeping-backend/internal/auth"
	"bookkeeping-backend/internal/handlers"
	"bookkeeping-backend/internal/repository"
	"bookkeeping-backend/internal/services/ledger"
)

// RegisterRoutes wires repositories into services and handlers and mounts
// everything under /api. Only login is reachable without a token.
func RegisterRoutes(r *gin.Engine, store repository.Store, tokens *auth.Manager) {
	ledgerSvc := ledger.NewService(store)

	authHandler := handlers.NewAuthHandler(store.Users(), tokens)
	homeHandler := handlers.NewHomeHandler(store.Users())
	userHandler := handlers.NewUserHandler(store)
	coaHandler := handlers.NewCoaHandler(store.Accounts())
	omzetHandler := handlers.NewTransactionHandler(ledgerSvc, ledger.Omzet)
	expenseHandler := handlers.NewTransactionHandler(ledgerSvc, ledger.Expense)

	api := r.Group("/api")
	api.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(tokens.Middleware())

	authed.GET("/home", homeHandler.Home)

	authed.GET("/users", userHandler.List)
	authed.GET("/users/:id", userHandler.Get)
	authed.POST("/users", userHandler.Create)
	authed.PATCH("/users/:id", userHandler.Update)
	authed.PATCH("/users/:id/deactivate", userHandler.Deactivate)
	authed.GET("/roles/list", userHandler.Roles)
	authed.GET("/branchs/list", userHandler.Branches)

	authed.GET("/coa", coaHandler.List)
	authed.GET("/coa/list", coaHandler.Options)
	authed.GET("/coa/:id", coaHandler.Get)
	authed.POST("/coa", coaHandler.Create)
	authed.PATCH("/coa/:id", coaHandler.Update)
	authed.DELETE("/coa/:id", coaHandler.Delete)
	authed.GET("/accounts", coaHandler.ActiveAccounts)

	registerTransactionRoutes(authed, "omzet", omzetHandler)
	registerTransactionRoutes(authed, "pengeluaran", expenseHandler)
}

func registerTransactionRoutes(g *gin.RouterGroup, name string, h *handlers.TransactionHandler) {
	g.GET("/"+name, h.List)
	g.GET("/"+name+"/:id", h.Get)
	g.POST("/"+name, h.Create)
	g.PATCH("/"+name+"/:id", h.Update)
	g.DELETE("/"+name+"/:id", h.Delete)
	g.POST("/"+name+"/:id/files", h.AddFiles)
	g.DELETE("/"+name+"/:id/files/:file_id", h.RemoveFile)
}
