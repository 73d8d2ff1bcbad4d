package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	embeddinggemini "github.com/docuchat-labs/docuchat/internal/adapters/driven/embedding/gemini"
	"github.com/docuchat-labs/docuchat/internal/adapters/driven/extract/pdf"
	llmgemini "github.com/docuchat-labs/docuchat/internal/adapters/driven/llm/gemini"
	"github.com/docuchat-labs/docuchat/internal/adapters/driven/storage/memory"
	"github.com/docuchat-labs/docuchat/internal/adapters/driven/storage/mongo"
	"github.com/docuchat-labs/docuchat/internal/adapters/driven/storage/sqlite"
	"github.com/docuchat-labs/docuchat/internal/adapters/driving/httpapi"
	"github.com/docuchat-labs/docuchat/internal/chunker"
	"github.com/docuchat-labs/docuchat/internal/config"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
	"github.com/docuchat-labs/docuchat/internal/core/services"
	"github.com/docuchat-labs/docuchat/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the JSON REST API for uploading PDFs, managing documents and
answering questions over the ingested content.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.SetVerbose(true)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newChunkStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("closing chunk store: %v", err)
		}
	}()

	embedder, err := embeddinggemini.NewEmbeddingService(embeddinggemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		BaseURL: cfg.Gemini.BaseURL,
		Model:   cfg.Gemini.EmbeddingModel,
	})
	if err != nil {
		return err
	}
	defer embedder.Close()

	generator, err := llmgemini.NewAnswerGenerator(llmgemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		BaseURL: cfg.Gemini.BaseURL,
		Model:   cfg.Gemini.GenerationModel,
	})
	if err != nil {
		return err
	}
	defer generator.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := embedder.Ping(pingCtx); err != nil {
		logger.Warn("gemini API unreachable at startup: %v", err)
	}
	cancel()

	retriever := services.NewRetriever(store)
	server := httpapi.NewServer(
		services.NewIngestionService(chunker.New(), embedder, store),
		services.NewChatService(embedder, retriever, generator),
		services.NewDocumentService(store),
		pdf.NewExtractor(),
		httpapi.Config{
			Addr:      cfg.Server.Addr,
			RateLimit: cfg.Server.RateLimit,
			RateBurst: cfg.Server.RateBurst,
		},
	)

	return server.Run(ctx)
}

// newChunkStore builds the configured storage backend.
func newChunkStore(ctx context.Context, cfg config.Config) (driven.ChunkStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		logger.Info("using mongodb chunk store at %s", cfg.Storage.Mongo.URI)
		return mongo.NewChunkStore(ctx, mongo.Config{
			URI:        cfg.Storage.Mongo.URI,
			Database:   cfg.Storage.Mongo.Database,
			Collection: cfg.Storage.Mongo.Collection,
		})
	case config.BackendSQLite:
		logger.Info("using sqlite chunk store")
		return sqlite.NewChunkStore(cfg.Storage.SQLite.DataDir)
	case config.BackendMemory:
		logger.Warn("using in-memory chunk store, data is lost on restart")
		return memory.NewChunkStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
