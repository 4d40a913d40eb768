package main

import (
	"context"
	"flag"
	"fmt"
	"inhouse/internal/config"
	"log"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	configPath := flag.String("config", "", "path to the JSON configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Printf("error: %s", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	switch flag.Arg(0) { // nolint:gocritic
	case "version":
		fmt.Fprintf(os.Stdout, "Inhouse %s\n", Version)
		return nil
	case "help":
		fmt.Fprint(os.Stdout, help())
		return nil
	case "":
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	switch flag.Arg(0) {
	case "render":
		if dir := flag.Arg(1); dir != "" {
			conf.OutputDir = dir
		}
		return render(ctx, conf)
	case "serve":
		return serve(ctx, conf)
	case "db:migrate":
		return migrateUp(conf)
	case "dev:fixtures":
		return loadFixtures(ctx, conf)
	case "config:init":
		return conf.Write(configPath)
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}

	return nil
}

func help() string {
	return fmt.Sprintf(`
Inhouse renders the leaderboard and match history of an Ability Draft
inhouse league as a static website.

Usage: %[1]s [-config PATH] COMMAND [ARGS…]

COMMANDS
    render [DIR]  write the website to DIR (default: the configured output dir)
    serve         preview the website over HTTP
    db:migrate    apply the SQL migrations to the configured database
    dev:fixtures  create default data for quick testing during development
    config:init   write the current configuration to the config file
    help          display this help
    version       display the current version
`,
		os.Args[0],
	)
}
