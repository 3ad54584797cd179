package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gigchain/config"
	"gigchain/core"
	"gigchain/core/genesis"
	"gigchain/crypto"
	"gigchain/observability/logging"
	"gigchain/observability/metrics"
	"gigchain/storage"
)

func main() {
	configPath := flag.String("config", "./config.toml", "path to the node configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Setup("gigd", "").Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup("gigd", cfg.Environment)
	logger.Info("starting node", "network", cfg.NetworkName, "dataDir", cfg.DataDir)

	nodeKey, err := crypto.LoadOrGenerateKey(cfg.NodeKeyFile)
	if err != nil {
		logger.Error("load node key", "error", err)
		os.Exit(1)
	}
	logger.Info("node identity ready", "principal", nodeKey.PubKey().Address().String())

	db, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "ledger"))
	if err != nil {
		logger.Error("open ledger database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	node := core.NewNode(db)

	spec, err := genesis.LoadGenesisFile(cfg.GenesisFile)
	if err != nil {
		logger.Error("load genesis", "error", err)
		os.Exit(1)
	}
	applied, err := genesis.Applied(node.State())
	if err != nil {
		logger.Error("check genesis marker", "error", err)
		os.Exit(1)
	}
	if !applied {
		if err := genesis.Apply(spec, node.State()); err != nil {
			logger.Error("apply genesis", "error", err)
			os.Exit(1)
		}
		logger.Info("genesis applied", "genesisFile", cfg.GenesisFile)
	}
	admin, err := spec.AdminAddress()
	if err != nil {
		logger.Error("resolve admin principal", "error", err)
		os.Exit(1)
	}
	node.SetAdmin(admin)
	node.SetEmitter(metrics.NewEmitter())

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := &http.Server{Addr: cfg.MetricsAddress, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("metrics listener up", "address", cfg.MetricsAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown metrics listener", "error", err)
	}
}
