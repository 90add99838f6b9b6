package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	grpchandler "github.com/ogurasousui/codex-employee-service/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-employee-service/internal/adapters/http/router"
	"github.com/ogurasousui/codex-employee-service/internal/adapters/messaging/rabbitmq"
	pgrepo "github.com/ogurasousui/codex-employee-service/internal/adapters/repository/postgres"
	redisrepo "github.com/ogurasousui/codex-employee-service/internal/adapters/repository/redis"
	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
	"github.com/ogurasousui/codex-employee-service/internal/platform/config"
	pg "github.com/ogurasousui/codex-employee-service/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-employee-service/internal/platform/logger"
	platformredis "github.com/ogurasousui/codex-employee-service/internal/platform/redis"
	"github.com/ogurasousui/codex-employee-service/internal/platform/server"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server stopped with error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	if !strings.EqualFold(cfg.Log.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, tx, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []employee.Option{employee.WithLogger(logger.WithComponent(log, "employee"))}
	if cfg.Messaging.AMQPURL != "" {
		publisher, err := rabbitmq.Dial(cfg.Messaging.AMQPURL, cfg.Messaging.Exchange)
		if err != nil {
			return fmt.Errorf("connect message broker: %w", err)
		}
		defer publisher.Close()
		opts = append(opts, employee.WithEventPublisher(publisher))
		log.Info("change events enabled", slog.String("exchange", cfg.Messaging.Exchange))
	}

	svc := employee.NewService(repo, nil, tx, opts...)

	g, gctx := errgroup.WithContext(ctx)

	httpServer := server.NewHTTP(cfg.Server.HTTPListenAddr, router.New(log, svc), cfg.Server.ShutdownTimeout, logger.WithComponent(log, "http"))
	g.Go(func() error { return httpServer.Run(gctx) })

	if cfg.Server.GRPCListenAddr != "" {
		grpcServer := server.NewGRPC(cfg.Server.GRPCListenAddr, logger.WithComponent(log, "grpc"), func(r grpc.ServiceRegistrar) {
			grpchandler.RegisterEmployeeServiceServer(r, grpchandler.NewEmployeeGrpcHandler(svc))
			healthpb.RegisterHealthServer(r, health.NewServer())
		})
		g.Go(func() error { return grpcServer.Run(gctx) })
	}

	log.Info("employee service started", slog.String("store", cfg.Store.Driver))

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (employee.Repository, employee.TransactionManager, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		client, err := platformredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("initialize redis client: %w", err)
		}
		closeFn := func() { _ = client.Close() }
		return redisrepo.NewEmployeeRepository(client, cfg.Redis.KeyPrefix), nil, closeFn, nil
	default:
		pool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("initialize database pool: %w", err)
		}
		tx := pg.NewTransactionManager(pool,
			pg.WithErrorTranslator(pgrepo.TranslateError),
			pg.WithTxLogger(logger.WithComponent(slog.Default(), "tx")),
		)
		return pgrepo.NewEmployeeRepository(pool), tx, pool.Close, nil
	}
}
