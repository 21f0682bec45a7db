// devdb starts a throwaway database container for local development,
// runs the schema migrations against it, and seeds it with the embedded
// sample portfolio through the normal import pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/joho/godotenv"
	"github.com/propertyflow/propertyflow/data"
	"github.com/propertyflow/propertyflow/internal/config"
	"github.com/propertyflow/propertyflow/internal/database"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var seed bool
	flag.BoolVar(&seed, "seed", true, "seed the database with sample data")
	flag.Parse()

	usage := `
Run a local development database container with the environment variables from the .env file.

Usage:

devdb [-h] [-f ENV_FILE_PATH] [-seed=false]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v\n", err)
	}

	ctx := context.Background()
	container, hostPort, err := startDBContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start database container: %v\n", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate container: %v\n", err)
		}
	}()

	// Point the connection at the mapped port
	cfg.DBHost = "127.0.0.1"
	cfg.DBPort = hostPort

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v\n", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v\n", err)
	}

	if seed {
		summary, err := services.RunImport(db, cfg.MasterUserID, data.SampleProperties)
		if err != nil {
			log.Fatalf("Failed to seed sample properties: %v\n", err)
		}
		log.Printf("Seeded sample data: %d properties, %d units, %d rent records\n",
			summary.PropertiesCreated, summary.UnitsCreated, summary.RentHistoryCreated)
		if len(summary.Errors) > 0 {
			log.Printf("Seed errors: %v\n", summary.Errors)
		}
	}

	log.Printf("Development database ready: %s on 127.0.0.1:%s (database %s)\n",
		cfg.DBType, hostPort, cfg.DBDatabase)
	log.Println("Press Ctrl+C to stop")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)
	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating database container...\n", sig)
}

// startDBContainer launches the configured database engine and returns
// the container and the host port mapped to the engine's listen port.
func startDBContainer(ctx context.Context, cfg *config.Config) (testcontainers.Container, string, error) {
	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	tcpPort, err := nat.NewPort("tcp", cfg.DBPort)
	if err != nil {
		return nil, "", err
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env:          dbInitEnv(cfg),
			WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, "", err
	}

	mapped, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", err
	}
	return container, mapped.Port(), nil
}

func dbInitEnv(cfg *config.Config) map[string]string {
	switch cfg.DBType {
	case "postgres":
		return map[string]string{
			"POSTGRES_DB":       cfg.DBDatabase,
			"POSTGRES_USER":     cfg.DBUser,
			"POSTGRES_PASSWORD": cfg.DBPassword,
		}
	default:
		return map[string]string{
			"MARIADB_DATABASE":             cfg.DBDatabase,
			"MARIADB_USER":                 cfg.DBUser,
			"MARIADB_PASSWORD":             cfg.DBPassword,
			"MARIADB_RANDOM_ROOT_PASSWORD": "yes",
			"MYSQL_DATABASE":               cfg.DBDatabase,
			"MYSQL_USER":                   cfg.DBUser,
			"MYSQL_PASSWORD":               cfg.DBPassword,
			"MYSQL_RANDOM_ROOT_PASSWORD":   "yes",
		}
	}
}
