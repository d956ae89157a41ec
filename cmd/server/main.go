package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ignite/social-api/internal/api"
	"github.com/ignite/social-api/internal/config"
	"github.com/ignite/social-api/internal/pkg/distlock"
	"github.com/ignite/social-api/internal/pkg/logger"
	"github.com/ignite/social-api/internal/repository/sqlstore"
	"github.com/ignite/social-api/internal/service/account"
	"github.com/ignite/social-api/internal/service/message"
	"github.com/redis/go-redis/v9"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("address %s is already in use: %w\n"+
			"  Hint: run 'lsof -i %s' to find the blocking process", addr, err, addr[strings.LastIndex(addr, ":"):])
	}
	ln.Close()
	return nil
}

// extractHost returns the host portion of a URL-style DSN, or the DSN with
// any query string removed for file-based stores.
func extractHost(dsn string) string {
	if at := strings.Index(dsn, "@"); at >= 0 {
		rest := dsn[at+1:]
		if slash := strings.Index(rest, "/"); slash >= 0 {
			rest = rest[:slash]
		}
		return rest
	}
	if q := strings.Index(dsn, "?"); q >= 0 {
		dsn = dsn[:q]
	}
	if dsn == "" {
		return "(unknown)"
	}
	return dsn
}

// connectRedis returns nil when Redis is not configured or unreachable;
// registration then runs unlocked and duplicate usernames are rejected by
// the account table's UNIQUE constraint.
func connectRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		logger.Info("redis not configured, registration locks disabled")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid redis url, treating it as host:port", "url", url, "error", err)
		opts = &redis.Options{Addr: url}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis connection failed, continuing without it", "url", url, "error", err)
		client.Close()
		return nil
	}
	logger.Info("redis connected", "addr", opts.Addr)
	return client
}

// newServices builds the domain services over db. Registration locks come
// only from Redis; none of them holds a database connection.
func newServices(db *sql.DB, redisClient *redis.Client, lockTTL time.Duration) (*account.Service, *message.Service) {
	accounts := account.NewService(sqlstore.NewAccountRepo(db))
	accounts.SetLocker(distlock.NewFactory(redisClient, lockTTL))
	return accounts, message.NewService(sqlstore.NewMessageRepo(db))
}

func run(configPath string) error {
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	logger.SetRedact(cfg.Log.Redact())

	addr := cfg.Server.Addr()
	if err := checkPortAvailable(addr); err != nil {
		return fmt.Errorf("pre-flight check: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("connecting to database", "driver", cfg.Database.Driver, "host", extractHost(cfg.Database.URL))
	db, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.ApplySchema {
		if err := sqlstore.EnsureSchema(ctx, db, cfg.Database.Driver); err != nil {
			return err
		}
		logger.Info("schema ensured", "driver", cfg.Database.Driver)
	}

	redisClient := connectRedis(ctx, cfg.Redis.URL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	accounts, messages := newServices(db, redisClient, cfg.Redis.LockTTL())

	server := api.NewServer(cfg.Server, cfg.CORS, api.Deps{
		Accounts: accounts,
		Messages: messages,
		DB:       db,
		Redis:    redisClient,
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case sig := <-done:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}
