package router

import (
	"net/http"

	_ "github.com/Trinidad006/CownectWeb-sub000/docs"
	mem "github.com/Trinidad006/CownectWeb-sub000/internal/adapters/storage/memory"
	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"
	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/records"
	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/statistics"
	"github.com/Trinidad006/CownectWeb-sub000/internal/middleware"
	"github.com/Trinidad006/CownectWeb-sub000/internal/platform/logger"
	"github.com/Trinidad006/CownectWeb-sub000/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger     // nil = sin logs

	// Repos: si vienen nil se usan los in-memory.
	Animals animals.Repository
	Records records.Repository

	// Capacidad por defecto del dashboard; <= 0 usa statistics.DefaultMaxCapacity.
	DefaultMaxCapacity int
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(opts.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	animalRepo := opts.Animals
	if animalRepo == nil {
		animalRepo = mem.NewAnimalRepo()
	}
	recordRepo := opts.Records
	if recordRepo == nil {
		recordRepo = mem.NewRecordRepo()
	}
	capacity := opts.DefaultMaxCapacity
	if capacity <= 0 {
		capacity = statistics.DefaultMaxCapacity
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalRepo)
	recordsSvc := records.NewService(recordRepo, animalsSvc)
	statsSvc := statistics.NewService(animalsSvc, recordsSvc, capacity)

	// Rutas por módulo
	r.Route("/animals", func(ar chi.Router) {
		animals.RegisterRoutes(ar, animalsSvc)
		records.RegisterRoutes(ar, recordsSvc)
	})
	animals.RegisterMarketplaceRoutes(r, animalsSvc)
	statistics.RegisterRoutes(r, statsSvc)

	return r
}
