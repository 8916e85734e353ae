package main

import (
	"flag"
	"os"
	"os/signal"

	"github.com/google/gops/agent"
	"github.com/nicolagi/mockodex/codex/server"
	"github.com/nicolagi/mockodex/storage"
	log "github.com/sirupsen/logrus"
)

func main() {
	defaultConfigFile := os.ExpandEnv("$HOME/lib/mockodex/config")
	configFile := flag.String("config", defaultConfigFile, "location of configuration file")
	flag.Parse()

	opts, err := loadConfig(*configFile)
	if err != nil {
		log.WithFields(log.Fields{
			"err":  err,
			"path": *configFile,
		}).Fatal("Could not load configuration")
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := agent.Listen(agent.Options{
		ShutdownCleanup: true,
	}); err != nil {
		log.WithField("err", err).Warn("Could not start gops agent")
	} else {
		defer agent.Close()
	}

	store := storage.NewBlobStore(storage.NewInMemoryStore())
	srv := server.New(
		server.WithAddress(opts.Listen),
		server.WithBlobStore(store),
	)
	addr, err := srv.Listen()
	if err != nil {
		log.WithFields(log.Fields{
			"err":     err,
			"address": opts.Listen,
		}).Fatal("Could not listen")
	}
	log.WithField("addr", addr).Info("Mock Codex API listening")

	// Before we call srv.Serve(), which returns only after srv.Shutdown()
	// is called, we need to install a signal handler to call
	// srv.Shutdown().
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		sig := <-c
		log.WithField("signal", sig).Info("Shutting down server")
		if err := srv.Shutdown(); err != nil {
			log.WithFields(log.Fields{"err": err}).Warn("Could not shut down the server cleanly")
		}
	}()

	if err := srv.Serve(); err != nil {
		log.Error(err)
	}
}
