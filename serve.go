package main

import (
	"context"
	"inhouse/internal/back"
	"inhouse/internal/config"
	"inhouse/internal/web"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

func serve(ctx context.Context, conf *config.Config) error {
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	b, err := back.New(ctx, conf)
	if err != nil {
		return err
	}

	server, err := web.NewServer(b, conf)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go server.Serve(&wg, done)

	sig := <-signaled
	log.Printf("info: received signal %d", sig)

	close(done)
	wg.Wait()
	log.Print("info: shutdown complete")

	return nil
}
