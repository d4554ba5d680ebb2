package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/mitaka/regintake/internal/config"
	"github.com/mitaka/regintake/internal/infra/database"
	"github.com/mitaka/regintake/internal/infra/export"
	"github.com/mitaka/regintake/internal/infra/repository"
	"github.com/mitaka/regintake/internal/present/rest"
	"github.com/mitaka/regintake/internal/service"
	"github.com/mitaka/regintake/internal/usecase"
)

func main() {
	configPath := flag.String("c", "", "path to config file")
	flag.Parse()

	conf := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config",
				slog.String("path", *configPath),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		conf = loaded
	}

	var repo usecase.RegistrationRepository
	switch conf.Server.Storage {
	case "postgres":
		db, err := database.NewPostgres(conf.Server.PostgresDsn)
		if err != nil {
			panic("failed to connect database")
		}
		err = database.MigratePostgres(db)
		if err != nil {
			panic("failed to migrate database")
		}
		repo = repository.NewPostgresRegistrationRepository(db)
	default:
		fileRepo, err := repository.NewFileRegistrationRepository(conf.Server.DataDir)
		if err != nil {
			slog.Error("failed to open registration store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repo = fileRepo
	}

	csvPath := filepath.Join(conf.Server.DataDir, "registrations.csv")
	workbookPath := filepath.Join(conf.Server.DataDir, "registrations.xlsx")
	if err := os.MkdirAll(conf.Server.DataDir, 0755); err != nil {
		slog.Error("failed to create data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registrationUC := usecase.NewRegistrationUsecase(repo)
	exportUC := usecase.NewExportUsecase(repo,
		export.NewCSVWriter(csvPath),
		export.NewWorkbookWriter(workbookPath),
	)

	if conf.Server.EnableTrace {
		shutdown, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shutdown()
	}

	// artifacts exist from startup on, even before the first request
	_ = exportUC.Refresh(context.Background())

	scheduler := service.NewExportScheduler(exportUC, conf.Server.ExportInterval())
	scheduler.Start(context.Background())

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("regintake"))
	}

	handler := rest.NewHandler(registrationUC, exportUC, csvPath)
	handler.RegisterRoutes(e)

	go func() {
		err := e.Start(conf.Server.ListenAddr)
		if err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("regintake"),
		)),
	)
	otel.SetTracerProvider(tp)

	return func() {
		_ = tp.Shutdown(context.Background())
	}, nil
}
