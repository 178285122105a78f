package main

import (
	"context"
	"errors"
	"log"
	"os"

	"go-mesinkasir/internal/config"
	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"
	"go-mesinkasir/internal/seed"
	"go-mesinkasir/internal/service"
	"go-mesinkasir/pkg/database"
	"go-mesinkasir/pkg/jwt"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	cmd := &cli.Command{
		Name:  "kasir",
		Usage: "Maintenance tasks for the mesin kasir backend",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Create or update all tables",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := open(cfg)
					if err != nil {
						return err
					}
					if err := model.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the admin account and default category",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "demo", Usage: "also generate fake stocks and products"},
					&cli.IntFlag{Name: "products", Value: 20, Usage: "number of demo products"},
					&cli.IntFlag{Name: "stocks", Value: 10, Usage: "number of demo stocks"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := open(cfg)
					if err != nil {
						return err
					}
					seeder := seed.New(repository.NewRepositories(db))

					acc := seed.AdminAccount{
						Username: cfg.SeedAdminUsername,
						Password: cfg.SeedAdminPassword,
						PIN:      cfg.SeedAdminPIN,
					}
					if err := seeder.Defaults(acc); err != nil {
						return err
					}

					if c.Bool("demo") {
						admin, _, err := seeder.Admin(acc)
						if err != nil {
							return err
						}
						if err := seeder.Demo(int(c.Int("products")), int(c.Int("stocks")), admin); err != nil {
							return err
						}
						log.Println("✅ Demo data generated")
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:      "reset-password",
				Usage:     "Set a new password and log the user out everywhere",
				ArgsUsage: "<username> <new-password>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return errors.New("usage: kasir reset-password <username> <new-password>")
					}
					auth, err := authService(cfg)
					if err != nil {
						return err
					}
					if err := auth.ResetPassword(c.Args().Get(0), c.Args().Get(1)); err != nil {
						return err
					}
					log.Printf("✅ Password for %s has been reset", c.Args().Get(0))
					return nil
				},
			},
			{
				Name:      "reset-pin",
				Usage:     "Set a new cashier PIN",
				ArgsUsage: "<username> <pin>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return errors.New("usage: kasir reset-pin <username> <pin>")
					}
					auth, err := authService(cfg)
					if err != nil {
						return err
					}
					if err := auth.ResetPIN(c.Args().Get(0), c.Args().Get(1)); err != nil {
						return err
					}
					log.Printf("✅ PIN for %s has been reset", c.Args().Get(0))
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func open(cfg config.Config) (*gorm.DB, error) {
	return database.ConnectDB(database.Options{
		DSN:      cfg.DSN(),
		LogLevel: cfg.DBLogLevel,
	})
}

func authService(cfg config.Config) (service.AuthService, error) {
	db, err := open(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewAuthService(repository.NewUserRepo(db), jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)), nil
}
