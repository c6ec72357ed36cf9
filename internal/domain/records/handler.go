package records

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cattle-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// ColumnLookup evita importar el paquete layout (rompe ciclos).
type ColumnLookup interface {
	VisibleKeys(ctx context.Context, profileID string) ([]string, error)
}

// columnas mínimas si no hay layout disponible
var fallbackColumns = []string{ColumnUniqueID, ColumnName}

func RegisterRoutes(r chi.Router, svc *Service, columns ColumnLookup) {
	r.Route("/records", func(rr chi.Router) {
		rr.Get("/", searchRecordsHandler(svc, columns))
		rr.Get("/health-statuses", listHealthStatusesHandler(svc))

		// Gestos de orden: el spec viaja en el request, no se persiste
		rr.Post("/sort", applySortGestureHandler())
	})
}

type searchResponse struct {
	QueryID    string               `json:"query_id"`
	Mode       QueryMode            `json:"mode"`
	Field      string               `json:"field,omitempty"`
	FieldKnown *bool                `json:"field_known,omitempty"`
	Terms      []string             `json:"terms,omitempty"`
	Total      int                  `json:"total"`
	Matched    int                  `json:"matched"`
	Sort       SortSpec             `json:"sort"`
	Indicators map[string]Indicator `json:"indicators"`
	Columns    []string             `json:"columns"`
	Rows       []Row                `json:"rows"`
	Stats      Stats                `json:"stats"`
}

type sortGestureRequest struct {
	Sort   SortSpec `json:"sort"`
	Column string   `json:"column"`
	Shift  bool     `json:"shift"`
}

type sortGestureResponse struct {
	Sort       SortSpec             `json:"sort"`
	Param      string               `json:"param"`
	Indicators map[string]Indicator `json:"indicators"`
}

// searchRecordsHandler godoc
// @Summary Buscar, filtrar y ordenar registros de ganado
// @Description Búsqueda libre multi-término (ranking por relevancia) o consulta por campo `campo:valor`, filtros exactos y orden multi-columna. Las filas se proyectan sobre las columnas visibles del usuario.
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param q query string false "Texto de búsqueda; `breed:gir` para consulta por campo"
// @Param health query string false "Estado de salud exacto"
// @Param breed query string false "Nombre de raza exacto"
// @Param active query bool false "Solo activos / inactivos"
// @Param location query int false "ID de ubicación"
// @Param sort query string false "Orden, p.ej. age:asc,name:desc"
// @Success 200 {object} searchResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "fuente de datos no disponible"
// @Router /records [get]
func searchRecordsHandler(svc *Service, columns ColumnLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := middleware.ProfileID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		crit := Criteria{
			Search:       q.Get("q"),
			HealthStatus: strings.TrimSpace(q.Get("health")),
			Breed:        strings.TrimSpace(q.Get("breed")),
		}

		if v := strings.TrimSpace(q.Get("active")); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "active must be true or false", http.StatusBadRequest)
				return
			}
			crit.Active = &b
		}
		if v := strings.TrimSpace(q.Get("location")); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "location must be an integer id", http.StatusBadRequest)
				return
			}
			crit.LocationID = &id
		}

		res, err := svc.Search(r.Context(), SearchInput{
			Criteria: crit,
			Sort:     ParseSortSpec(q.Get("sort")),
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrSourceUnavailable), errors.Is(err, ErrMasterDataUnavailable):
				http.Error(w, "records unavailable", http.StatusServiceUnavailable)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		keys := fallbackColumns
		if columns != nil {
			if visible, err := columns.VisibleKeys(r.Context(), profile); err == nil && len(visible) > 0 {
				keys = visible
			}
		}

		resp := searchResponse{
			QueryID:    res.QueryID,
			Mode:       res.Query.Mode,
			Terms:      res.Query.Terms,
			Total:      res.Total,
			Matched:    len(res.Records),
			Sort:       res.Sort,
			Indicators: res.Indicators,
			Columns:    keys,
			Rows:       res.Project(keys),
			Stats:      res.Stats,
		}
		if res.Query.Mode == QueryField {
			known := res.Query.Field.Known()
			resp.Field = res.Query.Field.Field
			resp.FieldKnown = &known
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// listHealthStatusesHandler godoc
// @Summary Estados de salud presentes en el rodeo
// @Description Lista ordenada y sin duplicados de los estados de salud del snapshot actual, para poblar el filtro `health`.
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} string
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "fuente de datos no disponible"
// @Router /records/health-statuses [get]
func listHealthStatusesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.ProfileID(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.HealthStatuses(r.Context())
		if err != nil {
			http.Error(w, "records unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// applySortGestureHandler godoc
// @Summary Aplicar un click de encabezado al orden actual
// @Description Click simple reemplaza el orden (asc -> desc -> sin orden). Con shift agrega, invierte o quita solo esa columna.
// @Tags records
// @Accept json
// @Produce json
// @Param payload body sortGestureRequest true "Orden actual + gesto"
// @Success 200 {object} sortGestureResponse
// @Failure 400 {string} string "invalid json / column required"
// @Router /records/sort [post]
func applySortGestureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sortGestureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Column) == "" {
			http.Error(w, "column required", http.StatusBadRequest)
			return
		}

		// Normaliza lo que venga del cliente (duplicados / direcciones inválidas).
		current := ParseSortSpec(req.Sort.String())
		next := current.Apply(Gesture{ColumnKey: req.Column, Shift: req.Shift})

		writeJSON(w, http.StatusOK, sortGestureResponse{
			Sort:       next,
			Param:      next.String(),
			Indicators: next.Indicators(),
		})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (records/layout)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
