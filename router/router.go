package router

import (
	"net/http"

	"go-fintrack/handler"
	"go-fintrack/web"
)

func NewRouter(userHandler *handler.UserHandler, dashboardHandler *handler.DashboardHandler, transactionHandler *handler.TransactionHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /static/", http.FileServerFS(web.StaticFS))

	// Anonymous-only pages: logged-in users bounce to the dashboard.
	mux.Handle("GET /register", handler.RedirectIfAuthenticated(handler.ErrorHandlingMiddleware(userHandler.RegisterPage)))
	mux.Handle("POST /register", handler.RedirectIfAuthenticated(handler.ErrorHandlingMiddleware(userHandler.Register)))
	mux.Handle("GET /login", handler.RedirectIfAuthenticated(handler.ErrorHandlingMiddleware(userHandler.LoginPage)))
	mux.Handle("POST /login", handler.RedirectIfAuthenticated(handler.ErrorHandlingMiddleware(userHandler.Login)))
	mux.Handle("POST /logout", handler.ErrorHandlingMiddleware(userHandler.Logout))

	// Everything else requires a session.
	mux.Handle("GET /{$}", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(dashboardHandler.Show)))
	mux.Handle("GET /transactions", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.List)))
	mux.Handle("GET /transactions/create", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.CreateForm)))
	mux.Handle("POST /transactions/create", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.Create)))
	mux.Handle("GET /transactions/{id}/update", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.UpdateForm)))
	mux.Handle("POST /transactions/{id}/update", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.Update)))
	mux.Handle("GET /transactions/{id}/delete", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.DeleteConfirm)))
	mux.Handle("POST /transactions/{id}/delete", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.Delete)))

	return mux
}
