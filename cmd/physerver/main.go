package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/jeongseonghan/ofdm80211/internal/radio"
	"github.com/jeongseonghan/ofdm80211/internal/sdr"
	"github.com/jeongseonghan/ofdm80211/internal/server"
)

func main() {
	configPath := pflag.String("config", "", "yaml config file")
	addr := pflag.String("addr", "", "listen address (overrides config)")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "physerver"})

	cfg := radio.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = radio.LoadConfig(*configPath); err != nil {
			logger.Fatal("config", "err", err)
		}
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	if cfg.SinkPath == "" {
		logger.Fatal("no sample sink configured (set sink_path)")
	}
	sink, err := sdr.CreateFileSink(cfg.SinkPath)
	if err != nil {
		logger.Fatal("sample sink", "err", err)
	}
	defer sink.Close()

	hub := server.NewWSHub()
	tx := radio.NewTransmitter(sink, cfg)
	handlers := server.NewHandlers(hub, tx)

	// The receiver is optional: without a source the server is
	// transmit-only.
	var receiver *radio.Receiver
	if cfg.SourcePath != "" {
		source, err := sdr.OpenFileSource(cfg.SourcePath)
		if err != nil {
			logger.Fatal("sample source", "err", err)
		}
		defer source.Close()

		receiver = radio.NewReceiver(source, handlers.OnFrames, cfg)
		receiver.Start()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		if receiver != nil {
			receiver.Halt()
		}
		sink.Close()
		os.Exit(0)
	}()

	if err := server.NewServer(cfg.ListenAddr, handlers).Start(); err != nil {
		logger.Fatal("server", "err", err)
	}
}
