// Command importPackages loads the package catalog from a CSV file.
package main

import (
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"filings/config"
	"filings/database"
	"filings/utils"
)

func main() {
	path := flag.String("file", "packages.csv", "CSV file to import")
	flag.Parse()

	config.LoadConfig()
	utils.InitLogger(config.AppConfig.LogLevel, config.AppConfig.LogFormat)
	database.ConnectDb()

	file, err := os.Open(*path)
	if err != nil {
		log.WithError(err).Fatal("Failed to open CSV file")
	}
	defer file.Close()

	stats, err := database.ImportPackages(database.Database.Db, file)
	if err != nil {
		log.WithError(err).Fatal("Import failed")
	}
	log.WithFields(log.Fields{
		"inserted": stats.Inserted,
		"updated":  stats.Updated,
		"skipped":  stats.Skipped,
	}).Info("Import complete")
}
