package database

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"filings/models"
	"filings/wizard"
)

// ImportStats counts what an import did.
type ImportStats struct {
	Inserted int
	Updated  int
	Skipped  int
}

// ImportPackages upserts the package catalog from CSV with the header
// registrationType,name,price,timeline,features,recommended. Features are
// separated by "|". Rows are matched on registration type and name.
func ImportPackages(db *gorm.DB, r io.Reader) (ImportStats, error) {
	var stats ImportStats

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return stats, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return stats, errors.New("csv file is empty or has only headers")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.TrimSpace(h)] = i
	}

	for i, row := range records[1:] {
		entry := log.WithField("row", i+2)

		regType := getField(row, headerIndex, "registrationType")
		name := getField(row, headerIndex, "name")
		price, err := strconv.ParseFloat(getField(row, headerIndex, "price"), 64)
		if _, known := wizard.Lookup(regType); !known || name == "" || err != nil || price <= 0 {
			entry.Warn("Skipping invalid package row")
			stats.Skipped++
			continue
		}

		features := lo.Compact(lo.Map(strings.Split(getField(row, headerIndex, "features"), "|"), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
		recommended, _ := strconv.ParseBool(getField(row, headerIndex, "recommended"))

		pkg := models.Package{
			RegistrationType: regType,
			Name:             name,
			Price:            price,
			Timeline:         getField(row, headerIndex, "timeline"),
			Features:         datatypes.NewJSONType(features),
			IsRecommended:    recommended,
		}

		var existing models.Package
		err = db.Where("registration_type = ? AND name = ?", regType, name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&pkg).Error; err != nil {
				return stats, fmt.Errorf("insert %s/%s: %w", regType, name, err)
			}
			stats.Inserted++
		case err != nil:
			return stats, err
		default:
			existing.Price = pkg.Price
			existing.Timeline = pkg.Timeline
			existing.Features = pkg.Features
			existing.IsRecommended = pkg.IsRecommended
			existing.IsDeleted = false
			if err := db.Save(&existing).Error; err != nil {
				return stats, fmt.Errorf("update %s/%s: %w", regType, name, err)
			}
			stats.Updated++
		}
	}
	return stats, nil
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
