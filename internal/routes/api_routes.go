package routes

import (
	"github.com/go-chi/chi/v5"

	"benishangul-police/idregistry/internal/api"
	"benishangul-police/idregistry/internal/constants"
	"benishangul-police/idregistry/internal/middleware"
)

// RegisterAPIRoutes registers all API routes and handlers. This keeps route
// registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers) {
	guard := middleware.StoreGuard(deps.Store)
	requireAuth := middleware.AuthMiddleware(deps.Services.Tokens)

	// Public routes. Verification carries no auth at all: this is the
	// endpoint a scanned QR code resolves to.
	r.Group(func(public chi.Router) {
		public.Use(guard)
		public.With(middleware.RateLimitMiddleware).Post("/api/auth/login", handlers.LoginHandler())
		public.Get("/api/ids/{id}", handlers.VerifyHandler())
	})

	// Authenticated routes; role checks per operation.
	r.Group(func(authed chi.Router) {
		authed.Use(guard)
		authed.Use(requireAuth)

		authed.With(middleware.RequireOperation(constants.OpMemberList)).
			Get("/api/ids", handlers.ListMembersHandler())
		authed.With(middleware.RequireOperation(constants.OpMemberCreate)).
			Post("/api/ids", handlers.CreateMemberHandler())
		authed.With(middleware.RequireOperation(constants.OpMemberUpdate)).
			Put("/api/ids/{id}", handlers.UpdateMemberHandler())

		authed.With(middleware.RequireOperation(constants.OpScanList)).
			Get("/api/scans/{id_number}", handlers.ListScansHandler())

		authed.With(middleware.RequireOperation(constants.OpAssetRead)).
			Get("/api/assets", handlers.GetAssetsHandler())
		authed.With(middleware.RequireOperation(constants.OpAssetWrite)).
			Post("/api/assets", handlers.UpsertAssetHandler())

		// Account management group (admin only)
		authed.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireOperation(constants.OpAccountManage))
			admin.Get("/api/accounts", handlers.ListAccountsHandler())
			admin.Post("/api/accounts", handlers.CreateAccountHandler())
			admin.Put("/api/accounts/{id}", handlers.UpdateAccountRoleHandler())
			admin.Delete("/api/accounts/{id}", handlers.DeleteAccountHandler())
		})
	})

	// Backup routes run outside the store guard: restore takes the store's
	// write lock itself and would deadlock against its own read lock.
	r.Group(func(backup chi.Router) {
		backup.Use(requireAuth)
		backup.Use(middleware.RequireOperation(constants.OpBackup))
		backup.Get("/api/backup", handlers.DownloadBackupHandler())
		backup.Post("/api/restore", handlers.RestoreBackupHandler())
	})
}
