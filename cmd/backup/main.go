package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"brainsmath/internal/config"
	"brainsmath/internal/database"
	"brainsmath/internal/repository"
	"brainsmath/internal/service"
)

func main() {
	exportPath := flag.String("export", "", "write a JSON snapshot to this path (default backup-<date>.json)")
	importPath := flag.String("import", "", "restore a JSON snapshot from this path")
	doExport := flag.Bool("e", false, "export with a generated filename")
	flag.Parse()

	if *exportPath == "" && *importPath == "" && !*doExport {
		fmt.Fprintln(os.Stderr, "usage: backup [-e] [-export path] [-import path]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backup := service.NewBackupService(
		repository.NewUserRepository(db),
		repository.NewResultRepository(db),
		repository.NewSettingsRepository(db),
	)

	switch {
	case *importPath != "":
		restored, err := backup.Import(*importPath)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Printf("Restored %d users from %s", restored, *importPath)
	default:
		path := *exportPath
		if path == "" {
			path = fmt.Sprintf("backup-%s.json", time.Now().Format("2006-01-02"))
		}
		if err := backup.Export(path); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Snapshot written to %s", path)
	}
}
