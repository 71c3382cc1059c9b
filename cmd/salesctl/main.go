package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "salesctl",
		Usage: "Build sales reports and manage budget figures from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"SALESCTL_LOG_LEVEL"},
			},
		},
		Before: initLogger,
		Commands: []*cli.Command{
			reportCommand(),
			gainsLossesCommand(),
			budgetCommand(),
			exportsCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
