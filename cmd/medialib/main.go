package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"

	"medialib/internal/config"
	"medialib/internal/server"
	"medialib/internal/store"
)

type args struct {
	Config string `arg:"-c,--config" default:"config.toml" help:"path to TOML config file"`
	Bind   string `arg:"--bind" help:"listen address (overrides config)"`
	NoDB   bool   `arg:"--no-db" help:"keep catalog snapshots in memory only"`
}

func (args) Description() string {
	return "medialib serves a gated media catalog with single-record share links"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.Load(a.Config)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if a.Bind != "" {
		cfg.Bind = a.Bind
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var st store.Store
	if a.NoDB || cfg.DBPath == "" {
		st = store.NewMemory()
	} else {
		st, err = store.NewSQLite(cfg.DBPath)
		if err != nil {
			log.Fatalf("open snapshot store: %v", err)
		}
	}
	defer st.Close()

	srv := server.New(cfg, st)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("Shutting down")
		srv.Stop()
		st.Close()
		os.Exit(0)
	}()

	if err := srv.Start(cfg.Bind); err != nil {
		log.Fatalf("server: %v", err)
	}
}
