package router

import (
	"fmt"
	"net/http"
	"time"

	mem "cattle-records/internal/adapters/storage/memory"
	_ "cattle-records/internal/docs"
	"cattle-records/internal/domain/layout"
	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/domain/records"
	"cattle-records/internal/middleware"
	"cattle-records/internal/platform/logger"
	"cattle-records/internal/platform/metrics"
	"cattle-records/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/text/language"
)

// tamaño del rodeo de ejemplo cuando no hay fuente configurada
const sampleHerdSize = 200

type Options struct {
	Logger       logger.Logger
	Registry     *prometheus.Registry
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcionales: sin store/fuentes se usa memoria con datos de ejemplo.
	LayoutStore   layout.Store
	Records       records.Source
	MasterData    masterdata.Source
	MasterDataTTL time.Duration

	Collation language.Tag
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.New(registry)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(m.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler(registry))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	layoutStore := opts.LayoutStore
	if layoutStore == nil {
		layoutStore = mem.NewLayoutStore()
	}
	recordSource := opts.Records
	if recordSource == nil {
		recordSource = mem.NewRecordSource(mem.SampleHerd(sampleHerdSize, time.Now(), 1))
	}
	masterSource := opts.MasterData
	if masterSource == nil {
		masterSource = mem.NewMasterDataSource(mem.SampleTables())
	}

	cached, err := masterdata.NewCachedSource(masterSource, opts.MasterDataTTL)
	if err != nil {
		return nil, fmt.Errorf("master data cache: %w", err)
	}

	// Services por módulo
	layoutSvc := layout.NewService(layoutStore,
		layout.WithLogger(log.With(map[string]any{"module": "layout"})),
		layout.WithObserver(m),
	)
	recordsSvc := records.NewService(recordSource, cached,
		records.WithLogger(log.With(map[string]any{"module": "records"})),
		records.WithObserver(m),
		records.WithCollation(opts.Collation),
	)

	// Rutas por módulo
	layout.RegisterRoutes(r, layoutSvc)
	records.RegisterRoutes(r, recordsSvc, layoutSvc)

	return r, nil
}
