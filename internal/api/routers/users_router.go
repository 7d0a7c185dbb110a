package routers

import (
	"net/http"

	"fintrack/internal/api/handlers/auth"
)

func usersRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/setup", auth.SetupHandler)
	mux.HandleFunc("POST /auth/login", auth.LoginHandler)
	mux.HandleFunc("POST /auth/logout", auth.LogoutHandler)
	mux.HandleFunc("GET /auth/session", auth.SessionHandler)

	return mux
}
