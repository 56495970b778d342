package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Najnomics/business-analysis-ai-V2/internal/application"
	appanalysis "github.com/Najnomics/business-analysis-ai-V2/internal/application/analysis"
	appauth "github.com/Najnomics/business-analysis-ai-V2/internal/application/auth"
	appexport "github.com/Najnomics/business-analysis-ai-V2/internal/application/export"
	"github.com/Najnomics/business-analysis-ai-V2/internal/config"
	domai "github.com/Najnomics/business-analysis-ai-V2/internal/domain/ai"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/ai/deepseek"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/ai/gemini"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/ai/prompt"
	mongodb "github.com/Najnomics/business-analysis-ai-V2/internal/infra/db/mongo"
	exportrender "github.com/Najnomics/business-analysis-ai-V2/internal/infra/export"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/httpserver"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/mail"
	minioStore "github.com/Najnomics/business-analysis-ai-V2/internal/infra/storage"
	"github.com/Najnomics/business-analysis-ai-V2/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect MongoDB
	client, err := mongodb.Connect(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Database.Name)

	// init repos
	analysisRepo := mongodb.NewAnalysisRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	resetRepo := mongodb.NewResetRepository(db)

	// init mailer
	mailer := mail.NewMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.FromName,
		cfg.SMTP.FromEmail,
		cfg.FrontendURL,
	)

	// init AI adapters, urutan tetap: deepseek lalu gemini
	providers := []domai.Client{
		deepseek.NewClient(cfg.AI.DeepSeek.APIKey, cfg.AI.DeepSeek.BaseURL, cfg.AI.DeepSeek.Model, cfg.AI.DemoMode),
		gemini.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model, cfg.AI.DemoMode),
	}

	// init services
	authSvc := &appauth.Service{
		Users:     userRepo,
		Resets:    resetRepo,
		Mailer:    mailer,
		Clock:     application.SystemClock{},
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		TokenTTL:  cfg.TokenTTL(),
	}

	analysisSvc := &appanalysis.Service{
		Repo:      analysisRepo,
		Providers: providers,
		Prompts:   prompt.NewBuilder(),
		Clock:     application.SystemClock{},
		Registry:  appanalysis.NewRegistry(),
		Notifier:  &mail.Notifier{Users: userRepo, Mailer: mailer},
	}

	// sapu record processing yang terlantar dari proses sebelumnya
	if n, err := analysisSvc.RecoverStale(ctx); err != nil {
		log.Printf("stale analysis sweep error: %v", err)
	} else if n > 0 {
		log.Printf("marked %d stale analyses as failed", n)
	}

	exportSvc := &appexport.Service{
		Repo: analysisRepo,
		Renderers: map[appexport.Format]appexport.Renderer{
			appexport.FormatPDF:  exportrender.PDFRenderer{},
			appexport.FormatPPTX: exportrender.PPTXRenderer{},
			appexport.FormatDOCX: exportrender.DOCXRenderer{},
		},
	}

	// init minio (opsional, arsip export)
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		exportSvc.Archive = store
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(60, 10))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"mongodb": &middleware.MongoHealthChecker{Client: client},
	}))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Mount("/", httpserver.NewRouter(authSvc, analysisSvc, exportSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
