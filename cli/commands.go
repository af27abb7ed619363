// Package cli implements the firstblog subcommands: running the server and
// maintaining the badger database.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"firstblog/app/config"
	"firstblog/app/repositories"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
)

// Runner executes subcommands against a configuration. Prompts are read
// from In and messages written to Out.
type Runner struct {
	Config *config.Config
	In     io.Reader
	Out    io.Writer

	upload func(cfg config.Backup, path string) error
}

// NewRunner returns a Runner on the process's standard streams.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		Config: cfg,
		In:     os.Stdin,
		Out:    os.Stdout,
		upload: uploadToS3,
	}
}

// ConfigureLogging applies the logging settings of cfg to the standard
// logger.
func ConfigureLogging(cfg *config.Config) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
}

// Run handles a subcommand and returns the process exit code.
func (r *Runner) Run(args []string) int {
	if len(args) < 1 {
		r.printHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		return r.serve()
	case "clean":
		return r.withBadger(r.clean)
	case "init":
		return r.withBadger(r.initDb)
	case "backup":
		return r.withBadger(r.backup)
	case "restore":
		if len(args) < 2 {
			fmt.Fprintln(r.Out, "Error: backup file path required for restore")
			return 1
		}
		return r.withBadger(func() int { return r.restore(args[1]) })
	case "help":
		r.printHelp()
		return 0
	default:
		fmt.Fprintf(r.Out, "Unknown command: %s\n\n", cmd)
		r.printHelp()
		return 1
	}
}

// printHelp prints help for the subcommands.
func (r *Runner) printHelp() {
	helpText := `Usage: firstblog <command> [--config <file>]

Commands:
  serve                           Run the blog service
  init                            Initialize a new empty database
  clean                           Remove the blog database
  backup                          Create a backup of the database
  restore <file>                  Restore database from backup
  help                            Display this help message
`
	fmt.Fprintln(r.Out, helpText)
}

// withBadger guards the maintenance commands, which only understand badger.
func (r *Runner) withBadger(f func() int) int {
	if r.Config.Storage.Driver != repositories.DriverBadger {
		fmt.Fprintf(r.Out, "Database maintenance needs the badger driver, not %q\n", r.Config.Storage.Driver)
		return 1
	}
	if r.dbPath() == "" {
		fmt.Fprintln(r.Out, "Error: storage path is empty")
		return 1
	}
	return f()
}

func (r *Runner) dbPath() string {
	return r.Config.Storage.Path
}

// confirm asks a yes/no question; anything but y or Y is a no.
func (r *Runner) confirm(question string) bool {
	fmt.Fprintf(r.Out, "%s [y/N] ", question)
	var response string
	fmt.Fscanln(r.In, &response)
	return response == "y" || response == "Y"
}

// clean removes the database.
func (r *Runner) clean() int {
	if _, err := os.Stat(r.dbPath()); os.IsNotExist(err) {
		fmt.Fprintln(r.Out, "Database is already clean (does not exist)")
		return 0
	}

	if !r.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(r.Out, "Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(r.dbPath()); err != nil {
		fmt.Fprintf(r.Out, "Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Fprintln(r.Out, "Database cleaned successfully")
	return 0
}

// initDb initializes a new empty database.
func (r *Runner) initDb() int {
	if _, err := os.Stat(r.dbPath()); err == nil {
		fmt.Fprintln(r.Out, "Database already exists. Use 'clean' first if you want to reinitialize.")
		return 0
	}

	if err := os.MkdirAll(r.dbPath(), 0755); err != nil {
		fmt.Fprintf(r.Out, "Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadger(r.dbPath())
	if err != nil {
		fmt.Fprintf(r.Out, "Failed to initialize database: %v\n", err)
		return 1
	}
	defer db.Close()

	fmt.Fprintln(r.Out, "Database initialized successfully")
	return 0
}

// backup writes a full badger backup into the backup directory and, when a
// bucket is configured, uploads it to S3.
func (r *Runner) backup() int {
	if _, err := os.Stat(r.dbPath()); os.IsNotExist(err) {
		fmt.Fprintln(r.Out, "No database exists to backup")
		return 1
	}

	backupDir := r.Config.Backup.Dir
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Fprintf(r.Out, "Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadger(r.dbPath())
	if err != nil {
		fmt.Fprintf(r.Out, "Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	if err := writeBackup(db, backupFile); err != nil {
		fmt.Fprintf(r.Out, "Failed to backup database: %v\n", err)
		return 1
	}
	fmt.Fprintf(r.Out, "Database backed up successfully to %s\n", backupFile)

	if r.Config.Backup.S3Bucket != "" {
		if err := r.upload(r.Config.Backup, backupFile); err != nil {
			fmt.Fprintf(r.Out, "Failed to upload backup: %v\n", err)
			return 1
		}
		fmt.Fprintf(r.Out, "Backup uploaded to s3://%s/%s\n", r.Config.Backup.S3Bucket, filepath.Base(backupFile))
	}
	return 0
}

func writeBackup(db *badger.DB, backupFile string) error {
	f, err := os.Create(backupFile)
	if err != nil {
		return err
	}
	if _, err := db.Backup(f, 0); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// restore restores the database from a backup.
func (r *Runner) restore(backupFile string) int {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Fprintf(r.Out, "Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Out, "Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Fprintf(r.Out, "Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(r.dbPath()); err == nil {
		if !r.confirm("Existing database found. Do you want to replace it?") {
			fmt.Fprintln(r.Out, "Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(r.dbPath()); err != nil {
			fmt.Fprintf(r.Out, "Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(r.dbPath(), 0755); err != nil {
		fmt.Fprintf(r.Out, "Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadger(r.dbPath())
	if err != nil {
		fmt.Fprintf(r.Out, "Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Fprintf(r.Out, "Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := db.Load(f, 16); err != nil {
		fmt.Fprintf(r.Out, "Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Fprintln(r.Out, "Database restored successfully")
	return 0
}
