// Package main runs the training MCP server over stdio (for local agent use).
// The same MCP server is also mounted on the service at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/gymcoach/internal/cache"
	"github.com/2beens/gymcoach/internal/config"
	"github.com/2beens/gymcoach/internal/db"
	"github.com/2beens/gymcoach/internal/logging"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/training/engine"
	trainingmcp "github.com/2beens/gymcoach/internal/training/mcp"
	"github.com/2beens/gymcoach/internal/training/store"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the MCP protocol
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		Console:       os.Stderr,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
	})

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: cfg.DBPassword,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	eng := engine.New(engine.Params{
		Store:   store.NewRepo(dbPool),
		Config:  cfg.Config,
		Metrics: metrics.NewManager("gymcoach", "mcp_stdio", prometheus.NewRegistry()),
		Cache:   cache.NewLocalCache(cfg.LocalCacheSizeMB * 1024 * 1024),
	})

	server := trainingmcp.NewServer(eng, trainingmcp.NewPoolSchemaRepo(dbPool), "stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
