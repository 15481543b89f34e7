package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/BenedictKing/jina-sum/feishu"
	"github.com/BenedictKing/jina-sum/internal/biz/repo"
	"github.com/BenedictKing/jina-sum/internal/biz/usecase"
	"github.com/BenedictKing/jina-sum/internal/conf"
	"github.com/BenedictKing/jina-sum/internal/data"
	"github.com/BenedictKing/jina-sum/internal/server"
	"github.com/BenedictKing/jina-sum/internal/service"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := conf.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !cfg.Summary.Enabled {
		log.Println("Summarization disabled by config, exiting")
		return
	}

	// Summary history (optional)
	var historyRepo repo.HistoryRepo
	if cfg.HistoryDBPath != "" {
		var err error
		historyRepo, err = data.NewHistoryRepo(cfg.HistoryDBPath)
		if err != nil {
			log.Printf("Failed to open history store, continuing without: %v", err)
		} else {
			defer historyRepo.Close()
			if count, err := historyRepo.Count(context.Background()); err == nil {
				fmt.Printf("[History] %d summaries recorded so far\n", count)
			}
		}
	}

	// Wire the core
	cache := usecase.NewSessionCache(cfg.Summary.ContentCacheTimeout, cfg.Summary.SummaryCacheTimeout)
	classifier := usecase.NewClassifier(cache, cfg.ToClassifierConfig())
	contentRepo := data.NewJinaRepo(cfg.Jina.ReaderBase, cfg.Summary.MaxWords)
	summaryRepo := data.NewOpenAIRepo(
		cfg.OpenAI.APIBase,
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.Summary.Prompt,
		cfg.Summary.QAPrompt,
		cfg.Summary.MaxWords,
	)

	summarySvc := service.NewSummaryService(
		classifier,
		cache,
		contentRepo,
		summaryRepo,
		historyRepo,
		cfg.Summary.SendNotice,
	)

	sweeper := service.NewCacheSweeper(cache)
	sweeper.Start()

	feishuClient := feishu.NewClient(cfg.Feishu.AppID, cfg.Feishu.AppSecret)
	helpText := service.HelpText(cfg.Summary.AutoSum, cfg.Summary.SumTrigger, cfg.Summary.QATrigger)
	srv := server.NewFeishuServer(feishuClient, summarySvc, helpText)

	// 优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		sweeper.Stop()
		srv.Stop()
		os.Exit(0)
	}()

	fmt.Println("Starting jina-sum bot...")
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
