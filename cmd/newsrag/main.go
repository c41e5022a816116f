package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"newsrag/internal/config"
	"newsrag/internal/embedding"
	"newsrag/internal/generation"
	"newsrag/internal/logger"
	"newsrag/internal/service"
	"newsrag/internal/summarizer"
	"newsrag/internal/tui"
	"newsrag/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/newsrag/config.yaml if not provided)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: newsrag [--config=config.yaml] [question ...]")
		fmt.Fprintln(flag.CommandLine.Output(), "Without a question the interactive terminal UI starts.")
		flag.PrintDefaults()
	}
	flag.Parse()
	question := strings.TrimSpace(strings.Join(flag.Args(), " "))

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logFile := cfg.Logging.File
	if logFile == "" && question == "" {
		logFile = filepath.Join(os.TempDir(), "newsrag.log")
	}
	lg, err := logger.New(cfg.Logging.Level, logFile)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	// Assemble components
	emb, err := embedding.New(cfg.Embedder)
	if err != nil {
		lg.Fatal("embedder init failed", zap.Error(err))
	}
	idx, err := vectorstore.Open(cfg.VectorStore)
	if err != nil {
		lg.Fatal("vector store init failed", zap.Error(err))
	}
	gen, err := generation.New(cfg.Generator)
	if err != nil {
		lg.Fatal("generator init failed", zap.Error(err))
	}
	lg.Info("components ready",
		zap.String("embedder", emb.Name()),
		zap.String("vector_store", idx.Name()),
		zap.String("collection", cfg.VectorStore.Collection),
		zap.String("generator", gen.Name()),
		zap.Int("limit", cfg.Pipeline.Limit),
	)

	svc := service.NewRAGService(emb, idx, gen, cfg.Pipeline.Limit)
	ctx := logger.ContextWithLogger(context.Background(), lg)

	if question != "" {
		res, err := svc.Answer(ctx, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Something went wrong while answering: %v\n", err)
			_ = lg.Sync()
			os.Exit(1)
		}
		fmt.Println(tui.Render(res, nil, tui.RenderOptions{Selected: -1}))
		return
	}

	m := tui.New(ctx, svc, summarizer.NewFrequencySummarizer(cfg.UI.PreviewSentences))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		lg.Fatal("tui exited", zap.Error(err))
	}
}
