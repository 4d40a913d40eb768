package main

import (
	"context"
	"inhouse/internal/back"
	"inhouse/internal/config"
	"inhouse/internal/web"
)

func render(ctx context.Context, conf *config.Config) error {
	b, err := back.New(ctx, conf)
	if err != nil {
		return err
	}

	server, err := web.NewServer(b, conf)
	if err != nil {
		return err
	}

	return server.Render(conf.OutputDir)
}
