package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ragbot/ragbot/config"
	"ragbot/ragbot/controllers"
	"ragbot/ragbot/conversation"
	"ragbot/ragbot/orchestrator"
	"ragbot/ragbot/routes"
	"ragbot/ragbot/services/embedding"
	"ragbot/ragbot/services/ingest"
	"ragbot/ragbot/services/prompt"
	"ragbot/ragbot/services/retrieval"
	"ragbot/ragbot/services/vectorstore/qdrant"
	"ragbot/ragbot/transport/telegram"
	"ragbot/ragbot/utils/logging"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	template, err := config.LoadPromptTemplate(cfg.PromptFile)
	if err != nil {
		logging.ErrorLogger.Error("prompt template error", zap.Error(err))
		os.Exit(1)
	}
	builder, err := prompt.NewBuilder(template)
	if err != nil {
		logging.ErrorLogger.Error("prompt template error", zap.Error(err))
		os.Exit(1)
	}

	store, err := qdrant.New(qdrant.Config{
		URL:            cfg.QdrantURL,
		CollectionName: cfg.QdrantCollection,
		APIKey:         cfg.QdrantAPIKey,
	})
	if err != nil {
		logging.ErrorLogger.Error("qdrant connection error", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	embedder := embedding.NewOllamaClient(cfg.OllamaURL, cfg.EmbedModel)
	sessions := conversation.NewStore()
	pipeline := retrieval.NewPipeline(embedder, store, cfg.RetrievalTimeout)
	orch := orchestrator.New(sessions, pipeline, builder, cfg.TopK)
	indexer := ingest.NewIndexer(embedder, store)

	chatCtrl := controllers.NewChatController(orch)
	docsCtrl := controllers.NewDocumentsController(indexer)
	healthCtrl := controllers.NewHealthController(sessions)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", healthCtrl.HealthCheck)
	r.Mount("/chat", routes.ChatRoutes(chatCtrl))
	r.Mount("/documents", routes.DocumentRoutes(docsCtrl))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	var bot *telegram.Bot
	if cfg.TelegramToken != "" {
		bot, err = telegram.New(cfg.TelegramToken, orch)
		if err != nil {
			logging.ErrorLogger.Error("telegram bot error", zap.Error(err))
			os.Exit(1)
		}
		go bot.Start()
	}

	stopReaper := make(chan struct{})
	if cfg.SessionTTL > 0 {
		go func() {
			ticker := time.NewTicker(cfg.SessionTTL)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					reaped := sessions.ReapIdle(time.Now().Add(-cfg.SessionTTL))
					if reaped > 0 {
						logging.AppLogger.Info("idle sessions reaped", zap.Int("count", reaped))
					}
				case <-stopReaper:
					return
				}
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	close(stopReaper)
	if bot != nil {
		bot.Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
