package main

import (
	"github.com/RodolfoBonis/spooliq-iamops/adapters/store/rdb"
	"github.com/RodolfoBonis/spooliq-iamops/domain"
	"github.com/spf13/cobra"
)

// getDBURL extracts the db-url flag value from the command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	f := findFlag(cmd, "db-url")
	if f != nil {
		return f.Value.String()
	}
	return ""
}

// buildRunRepository opens the run history store. An empty db-url disables
// run history; the returned repository is nil and callers skip persistence.
func buildRunRepository(cmd *cobra.Command) (domain.RunRepository, error) {
	dbURL := getDBURL(cmd)
	if dbURL == "" {
		return nil, nil
	}
	db, err := rdb.OpenFromURL(dbURL)
	if err != nil {
		return nil, err
	}
	if err := rdb.AutoMigrate(db); err != nil {
		return nil, err
	}
	return rdb.NewRunRepository(db), nil
}
