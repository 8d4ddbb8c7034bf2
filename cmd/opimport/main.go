// opimport loads a CSV operations file into the SQLite ledger so the
// server can run against the sqlite backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"finview/internal/cli"
	"finview/internal/log"
	"finview/internal/source/csvfile"
	"finview/internal/source/sqlite"
)

func main() {
	var (
		csvPath = flag.String("csv", "", "CSV operations file to import (default: OPERATIONS_CSV_PATH)")
		dbPath  = flag.String("db", "", "SQLite database path (default: SQLITE_DB_PATH)")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentSource)
	cfg := cli.LoadAndValidateConfig(logger)

	if *csvPath == "" {
		*csvPath = cfg.OperationsCSVPath
	}
	if *dbPath == "" {
		*dbPath = cfg.SQLiteDBPath
	}

	ctx := context.Background()

	txs, err := csvfile.New(*csvPath, logger).Load(ctx)
	if err != nil {
		logger.Error("Failed to read CSV operations",
			log.FieldFilePath, *csvPath, log.FieldError, err.Error())
		os.Exit(1)
	}

	repo, err := sqlite.New(*dbPath, logger)
	if err != nil {
		logger.Error("Failed to open SQLite database",
			log.FieldFilePath, *dbPath, log.FieldError, err.Error())
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.InsertBatch(ctx, txs); err != nil {
		logger.Error("Import failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	logger.Info("Import finished",
		log.FieldCount, len(txs), log.FieldFilePath, *dbPath)
	fmt.Printf("imported %d operations into %s\n", len(txs), *dbPath)
}
