package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	jwtauth "github.com/Trinidad006/CownectWeb-sub000/internal/adapters/auth/jwt"
	"github.com/Trinidad006/CownectWeb-sub000/internal/adapters/auth/remote"
	mem "github.com/Trinidad006/CownectWeb-sub000/internal/adapters/storage/memory"
	mongostore "github.com/Trinidad006/CownectWeb-sub000/internal/adapters/storage/mongo"
	pg "github.com/Trinidad006/CownectWeb-sub000/internal/adapters/storage/postgres"
	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"
	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/records"
	"github.com/Trinidad006/CownectWeb-sub000/internal/platform/config"
	"github.com/Trinidad006/CownectWeb-sub000/internal/platform/logger"
	"github.com/Trinidad006/CownectWeb-sub000/internal/ports/auth"
	"github.com/Trinidad006/CownectWeb-sub000/internal/router"

	"github.com/spf13/cobra"
)

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		Long: `Levanta el servidor HTTP. Toda la configuración viene de variables de entorno:

  PORT, STORAGE_BACKEND (memory|postgres|mongo), DB_DSN, MONGO_URI, MONGO_DATABASE,
  AUTH_MODE (dev|jwt|remote), JWT_SECRET, JWT_ISSUER, AUTH_BASE_URL, AUTH_API_KEY,
  LOG_LEVEL, LOG_FORMAT, DEFAULT_MAX_CAPACITY`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	return cmd
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	verifier, err := authVerifier(cfg)
	if err != nil {
		return err
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:       verifier,
		Logger:             log,
		Animals:            store.animals,
		Records:            store.records,
		DefaultMaxCapacity: cfg.DefaultMaxCapacity,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":    cfg.Addr(),
			"storage": string(cfg.Storage),
			"auth":    string(cfg.AuthMode),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"err": err})
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type storage struct {
	animals animals.Repository
	records records.Repository
	close   func()
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return storage{}, fmt.Errorf("postgres: %w", err)
		}
		if err := pg.Migrate(db); err != nil {
			_ = db.Close()
			return storage{}, err
		}
		return storage{
			animals: pg.NewAnimalsRepo(db),
			records: pg.NewRecordsRepo(db),
			close:   func() { _ = db.Close() },
		}, nil

	case config.StorageMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return storage{}, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return storage{}, err
		}
		return storage{
			animals: mongostore.NewAnimalsRepo(db),
			records: mongostore.NewRecordsRepo(db),
			close:   func() { _ = client.Disconnect(context.Background()) },
		}, nil

	default:
		return storage{
			animals: mem.NewAnimalRepo(),
			records: mem.NewRecordRepo(),
			close:   func() {},
		}, nil
	}
}

// authVerifier devuelve nil en modo dev: el middleware acepta X-Debug-User-ID.
func authVerifier(cfg config.Config) (auth.AuthVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthJWT:
		return jwtauth.NewVerifier(jwtauth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
	case config.AuthRemote:
		return remote.NewVerifier(remote.Config{
			BaseURL: cfg.AuthBaseURL,
			APIKey:  cfg.AuthAPIKey,
			Timeout: cfg.AuthTimeout,
		})
	default:
		return nil, nil
	}
}
