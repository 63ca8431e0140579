package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/application"
	appanalysis "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/application/analysis"
	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/config"
	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/infra/ai/groq"
	mysqldb "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/infra/db/mysql"
	postgresdb "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/infra/db/postgres"
	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/infra/extract"
	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/infra/httpserver"
	minioStore "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/infra/storage"
	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/middleware"
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

	// connect DB sesuai driver
	var (
		db   *sql.DB
		repo domain.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresdb.NewAnalysisRepository(db)
	default:
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqldb.NewAnalysisRepository(db)
	}
	defer db.Close()

	// init extractor (pdfcpu + tesseract)
	extractor := extract.New(cfg.OCR.Tesseract, nil)

	// init augmenter, optional; without a key runs degrade to heuristics only
	var augmenter domain.Augmenter
	if cfg.AI.APIKey != "" {
		augmenter = groq.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	} else {
		log.Println("no AI api key configured; augmentation disabled")
	}

	// init archive store, optional
	var archive domain.ArchiveStore
	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	// init service
	svc := &appanalysis.Service{
		Repo:      repo,
		Extractor: extractor,
		Augmenter: augmenter,
		Archive:   archive,
		Clock:     application.SystemClock{},
	}

	// init router
	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}
	handler := httpserver.NewRouter(svc, checkers)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
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
