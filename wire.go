package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	intconfig "homeservices/internal/config"
	h "homeservices/internal/http/handlers"
	"homeservices/internal/objectstore"
	"homeservices/internal/repositories"
	"homeservices/internal/services"
	"homeservices/internal/session"
	"homeservices/internal/store"
	"homeservices/internal/store/sqlstore"
	"homeservices/internal/supabase"
)

// app holds the wired handlers and whatever must be released on shutdown.
type app struct {
	handlers *h.Handlers
	closers  []func() error
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

func buildApp(ctx context.Context, env intconfig.Env, log *zap.Logger) (*app, error) {
	a := &app{}

	var sb *supabase.Client
	if env.DataBackend == intconfig.BackendSupabase || env.StorageBackend == intconfig.BackendSupabase {
		c, err := supabase.New(supabase.Config{ProjectURL: env.SupabaseURL, ServiceKey: env.SupabaseKey})
		if err != nil {
			return nil, fmt.Errorf("supabase: %w", err)
		}
		sb = c
	}

	tables, err := openTableStore(ctx, env, sb, a)
	if err != nil {
		a.close()
		return nil, err
	}
	objects, err := openObjectStore(ctx, env, sb)
	if err != nil {
		a.close()
		return nil, err
	}
	sessions, err := openSessions(ctx, env, log, a)
	if err != nil {
		a.close()
		return nil, err
	}

	if env.AdminUser == "" || (env.AdminPass == "" && env.AdminPassHash == "") {
		log.Warn("admin credentials are not configured; admin login is disabled")
	}

	bookings := services.BookingService{
		Repo: repositories.BookingRepository{Store: tables},
		Log:  log,
	}
	workers := services.WorkerService{
		Repo:    repositories.WorkerRepository{Store: tables},
		Objects: objects,
		Log:     log,
	}
	auth := services.AuthService{
		AdminUser:     env.AdminUser,
		AdminPass:     env.AdminPass,
		AdminPassHash: env.AdminPassHash,
		Secret:        []byte(env.SecretKey),
		TTL:           env.SessionTTL,
		Sessions:      sessions,
		Log:           log,
	}

	a.handlers = &h.Handlers{
		Bookings:     bookings,
		Workers:      workers,
		Auth:         auth,
		Export:       services.ExportService{Bookings: bookings, Workers: workers, Log: log},
		Log:          log,
		SecureCookie: env.CookieSecure,
		SessionTTL:   env.SessionTTL,
	}
	return a, nil
}

func openTableStore(ctx context.Context, env intconfig.Env, sb *supabase.Client, a *app) (store.Store, error) {
	switch env.DataBackend {
	case intconfig.BackendSupabase:
		return store.NewSupabase(sb), nil
	case intconfig.BackendMySQL, intconfig.BackendPostgres:
		db, err := intconfig.ConnectSQL(ctx, env.DataBackend, env.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		st, err := sqlstore.New(db, env.DataBackend)
		if err != nil {
			return nil, err
		}
		return st, nil
	case intconfig.BackendMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown DATA_BACKEND %q", env.DataBackend)
	}
}

func openObjectStore(ctx context.Context, env intconfig.Env, sb *supabase.Client) (objectstore.Store, error) {
	switch env.StorageBackend {
	case intconfig.BackendSupabase:
		return objectstore.NewSupabase(sb, env.StorageBucket), nil
	case intconfig.BackendS3:
		s3, err := objectstore.NewS3(objectstore.S3Config{
			Endpoint:  env.S3Endpoint,
			AccessKey: env.S3AccessKey,
			SecretKey: env.S3SecretKey,
			Region:    env.S3Region,
			UseSSL:    env.S3UseSSL,
			Bucket:    env.StorageBucket,
			PublicURL: env.S3PublicURL,
		})
		if err != nil {
			return nil, err
		}
		bctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := s3.EnsureBucket(bctx); err != nil {
			return nil, err
		}
		return s3, nil
	case intconfig.BackendMemory:
		return objectstore.NewMemory("memory://" + env.StorageBucket), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", env.StorageBackend)
	}
}

func openSessions(ctx context.Context, env intconfig.Env, log *zap.Logger, a *app) (session.Store, error) {
	if env.RedisAddr == "" {
		log.Info("session store: in-memory")
		return session.NewMemoryStore(), nil
	}
	rs := session.NewRedis(session.RedisConfig{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rs.Ping(pctx); err != nil {
		_ = rs.Close()
		return nil, err
	}
	a.closers = append(a.closers, rs.Close)
	log.Info("session store: redis", zap.String("addr", env.RedisAddr))
	return rs, nil
}
