package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"esgtrack/internal/clientauth"
	clientauthhandler "esgtrack/internal/clientauth/handler"
	"esgtrack/internal/derivation"
	derivationhandler "esgtrack/internal/derivation/handler"
	"esgtrack/internal/esg/baseline"
	esghandler "esgtrack/internal/esg/handler"
	esgservice "esgtrack/internal/esg/service"
	auditstore "esgtrack/internal/esg/store/audit"
	companystore "esgtrack/internal/esg/store/company"
	compliancestore "esgtrack/internal/esg/store/compliance"
	entrystore "esgtrack/internal/esg/store/entry"
	initiativestore "esgtrack/internal/esg/store/initiative"
	metricstore "esgtrack/internal/esg/store/metric"
	policystore "esgtrack/internal/esg/store/policy"
	httpapi "esgtrack/internal/http"
	jwttoken "esgtrack/internal/jwt_token"
	"esgtrack/internal/platform/config"
	"esgtrack/internal/platform/httpserver"
	kafkaadmin "esgtrack/internal/platform/kafka/admin"
	"esgtrack/internal/platform/kafka/consumer"
	"esgtrack/internal/platform/kafka/producer"
	"esgtrack/internal/platform/metrics"
	"esgtrack/internal/platform/postgres"
	"esgtrack/internal/platform/redis"
	"esgtrack/internal/reporting"
	reportinghandler "esgtrack/internal/reporting/handler"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the document event consumer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cfg, log := setup()
			return serve(ctx, cfg, log, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger, migrate bool) error {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate {
		if err := postgres.Migrate(ctx, db, log); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	health := map[string]httpapi.HealthCheck{
		"postgres": db.PingContext,
	}

	settings := companystore.NewPostgres(db)
	baselineOpts := []baseline.Option{baseline.WithLogger(log), baseline.WithMetrics(m)}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		baselineOpts = append(baselineOpts, baseline.WithCache(companystore.NewRedisCache(redisClient, cfg.ESG.BaselineCacheTTL)))
		health["redis"] = redisClient.Health
		log.InfoContext(ctx, "baseline cache enabled", "ttl", cfg.ESG.BaselineCacheTTL)
	}
	baselines := baseline.New(settings, cfg.ESG.DefaultBaseline, baselineOpts...)

	entries := entrystore.NewPostgres(db)
	initiatives := initiativestore.NewPostgres(db)

	derivationOpts := []derivation.Option{
		derivation.WithLogger(log),
		derivation.WithMetrics(m),
		derivation.WithConfig(cfg.ESG),
	}
	var events *producer.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		events, err = producer.New(cfg.Kafka, producer.WithLogger(log), producer.WithMetrics(m))
		if err != nil {
			return err
		}
		derivationOpts = append(derivationOpts, derivation.WithPublisher(events))
	}
	derivationSvc := derivation.New(entries, baselines, derivationOpts...)

	reportingSvc := reporting.New(entries, initiatives,
		reporting.WithLogger(log),
		reporting.WithMetrics(m),
	)
	recordsSvc := esgservice.New(esgservice.Stores{
		Metrics:     metricstore.NewPostgres(db),
		Entries:     entries,
		Initiatives: initiatives,
		Policies:    policystore.NewPostgres(db),
		Audits:      auditstore.NewPostgres(db),
		Reports:     compliancestore.NewPostgres(db),
		Settings:    settings,
	}, esgservice.WithLogger(log), esgservice.WithBaselineCache(baselines))

	tokens := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	clientExchange := clientauth.New(cfg.Server.Clients, tokens, cfg.Server.ClientTokenTTL, clientauth.WithLogger(log))
	if len(cfg.Server.Clients) == 0 {
		log.InfoContext(ctx, "no api clients configured, tokens only via the token command")
	}
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Metrics:        m,
		Gatherer:       registry,
		JWTValidator:   jwttoken.NewJWTServiceAdapter(tokens),
		RequestTimeout: cfg.Server.RequestTimeout,
		Health:         health,
		Public: []httpapi.Registrar{
			clientauthhandler.New(clientExchange, log),
			reportinghandler.New(reportingSvc, log),
		},
		Protected: []httpapi.AuthRegistrar{
			derivationhandler.New(derivationSvc, log),
			esghandler.New(recordsSvc, log),
		},
	})
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.RequestTimeout)

	// Consumer first: a failed start must leave no listener behind.
	var docs *consumer.Consumer
	if len(cfg.Kafka.Brokers) > 0 {
		docs, err = startConsumer(ctx, cfg.Kafka, derivationSvc, log)
		if err != nil {
			if events != nil {
				_ = events.Close(context.WithoutCancel(ctx))
			}
			return err
		}
	} else {
		log.InfoContext(ctx, "no kafka brokers configured, document events accepted over HTTP only")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting esgtrack", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if docs != nil {
		g.Go(func() error {
			return docs.Run(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			docs.Close()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		log.InfoContext(shutdownCtx, "shutting down")
		if events != nil {
			if err := events.Close(shutdownCtx); err != nil {
				log.WarnContext(shutdownCtx, "entry event flush incomplete", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func startConsumer(ctx context.Context, cfg config.KafkaConfig, svc *derivation.Service, log *slog.Logger) (*consumer.Consumer, error) {
	c, err := consumer.New(cfg, derivation.NewMessageHandler(svc), log)
	if err != nil {
		return nil, err
	}
	if err := kafkaadmin.EnsureTopics(ctx, c.Client(), cfg.Partitions, cfg.Replication, cfg.DocumentsTopic, cfg.EntriesTopic); err != nil {
		c.Close()
		return nil, err
	}
	log.InfoContext(ctx, "consuming document events",
		"topic", cfg.DocumentsTopic,
		"group", cfg.ConsumerGroup,
	)
	return c, nil
}
