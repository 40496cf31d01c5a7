package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/lead-intake-ai/cmd/mainconfig"
	"github.com/wolfman30/lead-intake-ai/internal/api/router"
	appconfig "github.com/wolfman30/lead-intake-ai/internal/config"
	"github.com/wolfman30/lead-intake-ai/internal/intake"
	"github.com/wolfman30/lead-intake-ai/internal/llm"
	"github.com/wolfman30/lead-intake-ai/internal/observability/metrics"
	"github.com/wolfman30/lead-intake-ai/pkg/logging"
)

func main() {
	// Load .env when present; real deployments use the environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting lead-intake-ai API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
	)

	llmClient, err := buildLLMClient(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize LLM provider", "error", err)
		os.Exit(1)
	}

	sig := intake.Signature{
		AgentName: cfg.AgentName,
		Brokerage: cfg.AgentBrokerage,
		Phone:     cfg.AgentPhone,
		Website:   cfg.AgentWebsite,
	}

	gateway := intake.NewGateway(llmClient, cfg.LLMMaxTokens)
	extractor := intake.NewExtractor(gateway, cfg.AgentName)
	matcher := intake.NewMatcher(sig, cfg.DefaultLeadSource)
	renderer := intake.NewRenderer(sig)
	intakeMetrics := metrics.NewIntakeMetrics(nil)
	pipeline := intake.NewPipeline(matcher, extractor, renderer, cfg.DefaultLeadSource, logger, intakeMetrics)
	intakeHandler := intake.NewHandler(pipeline, cfg.WebhookSecret, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		IntakeHandler:      intakeHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildLLMClient selects completion providers from config. "auto" chains the
// first configured provider with the next as fallback.
func buildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (llm.Client, error) {
	type provider struct {
		name  string
		build func() (llm.Client, error)
		ready bool
	}

	providers := []provider{
		{
			name: "bedrock",
			build: func() (llm.Client, error) {
				awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
				if err != nil {
					return nil, err
				}
				return llm.NewBedrockClient(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID), nil
			},
			ready: cfg.BedrockModelID != "",
		},
		{
			name: "gemini",
			build: func() (llm.Client, error) {
				return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
			},
			ready: cfg.GeminiAPIKey != "",
		},
		{
			name: "anthropic",
			build: func() (llm.Client, error) {
				return llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModelID)
			},
			ready: cfg.AnthropicAPIKey != "",
		},
	}

	if cfg.LLMProvider != "auto" {
		for _, p := range providers {
			if p.name != cfg.LLMProvider {
				continue
			}
			if !p.ready {
				return nil, fmt.Errorf("provider %s selected but not configured", p.name)
			}
			return p.build()
		}
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}

	var chosen []llm.Client
	var names []string
	for _, p := range providers {
		if !p.ready || len(chosen) == 2 {
			continue
		}
		client, err := p.build()
		if err != nil {
			logger.Warn("skipping LLM provider", "provider", p.name, "error", err)
			continue
		}
		chosen = append(chosen, client)
		names = append(names, p.name)
	}

	switch len(chosen) {
	case 0:
		return nil, errors.New("no LLM provider configured")
	case 1:
		logger.Info("using single LLM provider", "provider", names[0])
		return chosen[0], nil
	default:
		logger.Info("using LLM provider chain", "primary", names[0], "fallback", names[1])
		return llm.NewFallbackClient(chosen[0], chosen[1], logger), nil
	}
}
