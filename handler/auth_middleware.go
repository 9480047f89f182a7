package handler

import (
	"context"
	"net/http"

	"go-fintrack/common"
	"go-fintrack/config"
	"go-fintrack/service"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UsernameKey contextKey = "username"
)

// setSessionCookie writes the signed session token as an HttpOnly cookie.
func setSessionCookie(w http.ResponseWriter, token string, maxAgeSeconds int) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.Session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAgeSeconds,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	setSessionCookie(w, "", -1)
}

// AuthMiddleware requires a valid session cookie. Unauthenticated requests
// are redirected to the login page; the verified user identity is placed in
// the request context for downstream handlers.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(config.AppConfig.Session.CookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		claims, err := service.ParseSession(cookie.Value)
		if err != nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RedirectIfAuthenticated sends logged-in users visiting the login or
// register pages straight to the dashboard.
func RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(config.AppConfig.Session.CookieName); err == nil {
			if _, err := service.ParseSession(cookie.Value); err == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser extracts the authenticated identity placed by AuthMiddleware.
func currentUser(r *http.Request) (int, string, *common.AppError) {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return 0, "", common.NewAppError(http.StatusUnauthorized, "Invalid session", nil)
	}
	username, _ := r.Context().Value(UsernameKey).(string)
	return userID, username, nil
}
