package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/kmonkmol38/DashNew1/internal/domain"
	"github.com/kmonkmol38/DashNew1/internal/drive"
	"github.com/kmonkmol38/DashNew1/internal/ingest"
	"github.com/kmonkmol38/DashNew1/internal/session"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

// openStore connects to Postgres with the pgx driver and wraps the
// connection in the durable session store.
func openStore(c *cli.Context) (session.Store, *sqlx.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := sqlx.NewDb(db, "pgx")
	store, err := session.NewPostgresStoreFromDB(wrapped)
	if err != nil {
		wrapped.Close()
		return nil, nil, err
	}
	return store, wrapped, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Load report workbooks into the dashboard session store",
		Commands: []*cli.Command{
			{
				Name:  "ingest",
				Usage: "Parse a workbook file and persist it as the current session",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the .xlsx workbook",
						Required: true,
					},
				},
				Action: runIngest,
			},
			{
				Name:   "show",
				Usage:  "Print the stored session summary",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runShow,
			},
			{
				Name:   "clear",
				Usage:  "Remove the stored session",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runClear,
			},
			{
				Name:  "drive-sync",
				Usage: "Download the newest workbook from Google Drive and persist it",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "folder-path",
						Usage:   "Drive folder path holding the workbooks",
						EnvVars: []string{"DRIVE_FOLDER_PATH"},
					},
					&cli.StringFlag{
						Name:    "folder-id",
						Usage:   "Drive folder ID (takes precedence over folder-path)",
						EnvVars: []string{"DRIVE_FOLDER_ID"},
					},
					&cli.BoolFlag{
						Name:  "serve",
						Usage: "Keep running and expose the sync endpoints over HTTP",
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address for serve mode",
						Value: ":8090",
					},
				},
				Action: runDriveSync,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runIngest(c *cli.Context) error {
	store, db, err := openStore(c)
	if err != nil {
		return err
	}
	defer db.Close()

	path := c.String("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read workbook: %w", err)
	}

	return ingestWorkbook(c.Context, store, filepath.Base(path), data)
}

func ingestWorkbook(ctx context.Context, store session.Store, fileName string, data []byte) error {
	result, err := ingest.ParseWorkbook(data)
	if err != nil {
		return fmt.Errorf("failed to parse workbook: %w", err)
	}

	sess := &domain.Session{
		Sheets:     result.Sheets,
		FileName:   fileName,
		UploadedAt: time.Now().UTC(),
		Warnings:   result.Warnings,
	}
	if err := store.Set(ctx, sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	info := sess.Info()
	total := 0
	for _, n := range info.RowCounts {
		total += n
	}
	log.Printf("Ingested %s: %d rows across %d sheets", fileName, total, len(info.RowCounts))
	for _, w := range sess.Warnings {
		log.Printf("warning: %s", w)
	}
	return nil
}

func runShow(c *cli.Context) error {
	store, db, err := openStore(c)
	if err != nil {
		return err
	}
	defer db.Close()

	sess, ok, err := store.Get(c.Context)
	if err != nil {
		return err
	}
	if !ok {
		log.Println("No session stored")
		return nil
	}

	info := sess.Info()
	log.Printf("File: %s (uploaded %s)", info.FileName, info.UploadedAt.Format(time.RFC3339))
	for _, kind := range domain.AllSheetKinds() {
		log.Printf("  %-20s %d rows", kind, info.RowCounts[kind])
	}
	for _, w := range sess.Warnings {
		log.Printf("warning: %s", w)
	}
	return nil
}

func runClear(c *cli.Context) error {
	store, db, err := openStore(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Clear(c.Context); err != nil {
		return err
	}
	log.Println("Session cleared")
	return nil
}

func runDriveSync(c *cli.Context) error {
	store, db, err := openStore(c)
	if err != nil {
		return err
	}
	defer db.Close()

	driveService, err := drive.NewService(os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"))
	if err != nil {
		return fmt.Errorf("failed to initialize Drive service: %w", err)
	}

	syncer := drive.NewSyncer(driveService, func(ctx context.Context, fileName string, data []byte) error {
		return ingestWorkbook(ctx, store, fileName, data)
	})

	opts := drive.SyncOptions{
		FolderID:   c.String("folder-id"),
		FolderPath: c.String("folder-path"),
	}

	if !c.Bool("serve") {
		name, err := syncer.SyncLatest(c.Context, opts)
		if err != nil {
			return err
		}
		log.Printf("Synced %s", name)
		return nil
	}

	// Serve mode keeps the process alive so operators can list the folder
	// and trigger syncs over HTTP.
	r := mux.NewRouter()
	handler := drive.NewHandler(driveService, syncer)
	handler.RegisterRoutes(r)

	addr := c.String("listen")
	log.Printf("Drive sync server listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
