package controllers

import (
	"net/http"

	"github.com/bookline-app/bookline/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	httpapi.WriteJSON(w, status, payload)
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	httpapi.WriteError(w, r, status, code, message)
}
