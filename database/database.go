package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"filings/config"
	"filings/models"
	"filings/wizard"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, migrates it and stores it globally.
func ConnectDb() {
	cfg := config.AppConfig

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBName)
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		dialector = postgres.Open(dsn)
	}

	db, err := Open(dialector)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("Failed to get database instance")
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)
}

// Open connects through dialector, runs migrations and seeds, and makes the
// connection the global one.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		return nil, err
	}
	if err := seedPackages(db); err != nil {
		return nil, err
	}
	Database = DbInstance{Db: db}
	return db, nil
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) error {
	log.Info("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Package{},
		&models.Ticket{},
		&models.TicketTask{},
		&models.PaymentTransaction{},
		&models.LoginTracking{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Migrations completed successfully.")
	return nil
}

type packageSeed struct {
	name        string
	price       float64
	timeline    string
	features    []string
	recommended bool
}

var packageSeeds = map[string][]packageSeed{
	wizard.PrivateLimited: {
		{"Basic", 6999, "10-12 working days", []string{"Name approval", "SPICe+ filing", "Certificate of Incorporation"}, false},
		{"Standard", 9999, "7-10 working days", []string{"Everything in Basic", "2 DSC", "PAN & TAN", "Bank account assistance"}, true},
		{"Premium", 14999, "5-7 working days", []string{"Everything in Standard", "GST registration", "Commencement of business (INC-20A)"}, false},
	},
	wizard.GST: {
		{"GST Registration", 1499, "3-5 working days", []string{"Application filing", "ARN tracking", "GSTIN certificate"}, true},
		{"GST + 3 Months Returns", 3999, "3-5 working days", []string{"GST registration", "GSTR-1 and GSTR-3B for 3 months"}, false},
	},
	wizard.StartupIndia: {
		{"DPIIT Recognition", 4999, "15-20 working days", []string{"Eligibility check", "Write-up drafting", "Application filing"}, true},
	},
	wizard.Proprietorship: {
		{"Starter", 1999, "5-7 working days", []string{"MSME (Udyam)", "Current account assistance"}, false},
		{"Complete", 3999, "7-10 working days", []string{"MSME (Udyam)", "GST registration", "Shop & Establishment"}, true},
	},
	wizard.FSSAI: {
		{"Basic Registration", 1999, "7-10 working days", []string{"Form A filing", "Registration certificate"}, true},
		{"State License", 5999, "30-45 working days", []string{"Form B filing", "Document review", "License certificate"}, false},
	},
}

// seedPackages inserts the default packages for registration types that have none.
func seedPackages(db *gorm.DB) error {
	for regType, seeds := range packageSeeds {
		var count int64
		if err := db.Model(&models.Package{}).Where("registration_type = ?", regType).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		rows := make([]models.Package, 0, len(seeds))
		for _, s := range seeds {
			rows = append(rows, models.Package{
				RegistrationType: regType,
				Name:             s.name,
				Price:            s.price,
				Timeline:         s.timeline,
				Features:         datatypes.NewJSONType(s.features),
				IsRecommended:    s.recommended,
			})
		}
		if err := db.Create(&rows).Error; err != nil {
			return fmt.Errorf("seed packages for %s: %w", regType, err)
		}
		log.WithFields(log.Fields{"registrationType": regType, "count": len(rows)}).Info("Seeded packages")
	}
	return nil
}
