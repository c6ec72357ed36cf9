package layout

import (
	"encoding/json"
	"errors"
	"net/http"

	"cattle-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/layout", func(lr chi.Router) {
		lr.Get("/", getLayoutHandler(svc))
		lr.Get("/visible", getVisibleHandler(svc))
		lr.Post("/columns/{key}/toggle", toggleColumnHandler(svc))
		lr.Post("/reorder", reorderHandler(svc))
		lr.Post("/reset", resetHandler(svc))
	})
}

type layoutResponse struct {
	Version string   `json:"version"`
	Columns []Column `json:"columns"`
}

type reorderRequest struct {
	SourceKey string `json:"source_key"`
	TargetKey string `json:"target_key"`
}

func profileFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	profile, ok := middleware.ProfileID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return profile, true
}

func writeLayout(w http.ResponseWriter, cols []Column, err error) {
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUnknownColumn):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{Version: SchemaVersion, Columns: cols})
}

// getLayoutHandler godoc
// @Summary Layout de columnas del usuario
// @Description Devuelve las 14 columnas (visibles y ocultas) con su orden. Si no hay layout persistido o está desactualizado se regenera el default.
// @Tags layout
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} layoutResponse
// @Failure 401 {string} string "unauthorized"
// @Router /layout [get]
func getLayoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := profileFrom(w, r)
		if !ok {
			return
		}
		cols, err := svc.Columns(r.Context(), profile)
		writeLayout(w, cols, err)
	}
}

// getVisibleHandler godoc
// @Summary Columnas visibles en orden
// @Tags layout
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} layoutResponse
// @Failure 401 {string} string "unauthorized"
// @Router /layout/visible [get]
func getVisibleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := profileFrom(w, r)
		if !ok {
			return
		}
		cols, err := svc.Visible(r.Context(), profile)
		writeLayout(w, cols, err)
	}
}

// toggleColumnHandler godoc
// @Summary Mostrar / ocultar una columna
// @Tags layout
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param key path string true "Key de la columna"
// @Success 200 {object} layoutResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "unknown column"
// @Router /layout/columns/{key}/toggle [post]
func toggleColumnHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := profileFrom(w, r)
		if !ok {
			return
		}
		cols, err := svc.Toggle(r.Context(), profile, chi.URLParam(r, "key"))
		writeLayout(w, cols, err)
	}
}

// reorderHandler godoc
// @Summary Intercambiar el orden de dos columnas (drag & drop)
// @Tags layout
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body reorderRequest true "Columna arrastrada y columna destino"
// @Success 200 {object} layoutResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "unknown column"
// @Router /layout/reorder [post]
func reorderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := profileFrom(w, r)
		if !ok {
			return
		}
		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		cols, err := svc.Reorder(r.Context(), profile, req.SourceKey, req.TargetKey)
		writeLayout(w, cols, err)
	}
}

// resetHandler godoc
// @Summary Restaurar el layout por defecto
// @Tags layout
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} layoutResponse
// @Failure 401 {string} string "unauthorized"
// @Router /layout/reset [post]
func resetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := profileFrom(w, r)
		if !ok {
			return
		}
		cols, err := svc.Reset(r.Context(), profile)
		writeLayout(w, cols, err)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (records/layout)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
