package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/foliopilot/foliopilot/agent/agents/copilot"
	"github.com/foliopilot/foliopilot/agent/agents/haiku"
	llmx "github.com/foliopilot/foliopilot/agent/llm"
	statex "github.com/foliopilot/foliopilot/agent/state"
	toolx "github.com/foliopilot/foliopilot/agent/tool"
	"github.com/foliopilot/foliopilot/pkg/config"
	_ "github.com/foliopilot/foliopilot/pkg/logger/autoload"
	"github.com/foliopilot/foliopilot/pkg/marketdata"
	"github.com/foliopilot/foliopilot/portfolio"
	"github.com/foliopilot/foliopilot/server"
)

type AppConfig struct {
	UserID      string `envconfig:"USER_ID" split_words:"true" default:"default-user"`
	ChannelType string `envconfig:"CHANNEL_TYPE" split_words:"true" default:"chat"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appCfg := config.MustNew[AppConfig]("APP")

	llmCfg := config.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid llm config")
	}

	models, err := haiku.NewRegistry(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build model registry")
	}

	redisCfg := config.MustNew[statex.UpstashRedisConfig]("UPSTASH")
	store, err := statex.NewUpstashRedisStore(*redisCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build session store")
	}

	quotesCfg := config.MustNew[marketdata.Config]("MARKETDATA")
	quotes := marketdata.MustNew(*quotesCfg)

	chat, err := copilot.New(store, models, toolx.NewGateway(quotes), nil, copilot.Config{
		UserID:      appCfg.UserID,
		ChannelType: appCfg.ChannelType,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build copilot")
	}

	serverOpts := []server.Option{server.WithCopilot(chat)}

	pgCfg := config.MustNew[portfolio.Config]("PORTFOLIO")
	if pgCfg.DSN != "" {
		db, err := portfolio.NewDB(*pgCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("open portfolio database")
		}
		defer db.Close()

		holdings, err := portfolio.NewPGStore(db)
		if err != nil {
			log.Fatal().Err(err).Msg("build holdings store")
		}
		if err := holdings.CreateSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("create holdings schema")
		}

		valuer, err := portfolio.NewValuer(holdings, quotes)
		if err != nil {
			log.Fatal().Err(err).Msg("build portfolio valuer")
		}
		serverOpts = append(serverOpts, server.WithPortfolio(holdings, valuer))
	} else {
		log.Warn().Msg("portfolio dsn not set, portfolio endpoints disabled")
	}

	srvCfg := config.MustNew[server.Config]("HTTP")
	srv := server.New(*srvCfg, serverOpts...)

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}
