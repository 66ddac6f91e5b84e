package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/farhancoder7071/journynow/internal/adapter/memory"
	"github.com/farhancoder7071/journynow/internal/adapter/postgres"
	"github.com/farhancoder7071/journynow/internal/app"
	"github.com/farhancoder7071/journynow/internal/config"
	"github.com/farhancoder7071/journynow/internal/domain"
	"github.com/farhancoder7071/journynow/internal/logging"
)

func main() {
	root := &cli.Command{
		Name:  "journynow",
		Usage: "Transit information and back-office server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", Sources: cli.EnvVars("JOURNYNOW_CONFIG")},
		},
		Commands: []*cli.Command{
			serveCommand(),
			hashPasswordCommand(),
			createAdminCommand(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("config"), "")
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "HTTP listen address, overrides http.addr"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("config"), c.String("addr"))
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Print the stored digest for a password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			digest, err := app.HashPassword(c.String("password"))
			if err != nil {
				return err
			}
			fmt.Println(digest)
			return nil
		},
	}
}

func createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "Create an admin account in the configured store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "full-name"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if cfg.Storage.Driver == config.DriverMemory {
				return fmt.Errorf("create-admin needs a persistent store, storage.driver is %q", cfg.Storage.Driver)
			}
			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			auth := app.NewAuthService(store, store.Sessions(), app.AuthOptions{PasswordMinLength: cfg.Auth.PasswordMinLength})
			u, err := auth.CreateAccount(ctx, app.RegisterInput{
				Username: c.String("username"),
				Password: c.String("password"),
				FullName: c.String("full-name"),
			}, domain.RoleAdmin)
			if err != nil {
				return err
			}
			fmt.Printf("created admin %s (id %d)\n", u.Username, u.ID)
			return nil
		},
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

// openStore returns the configured storage and its release function.
func openStore(ctx context.Context, cfg *config.Config) (domain.Storage, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}
