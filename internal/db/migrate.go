package db

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/HectorEmCode/facturacionjtt/internal/config"
	"github.com/HectorEmCode/facturacionjtt/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate opens the store designated by dsn (SQLite file path by
// default, Postgres when the DSN says so) and brings the schema up to date.
// Postgres connections are retried to give the database time to start.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL está vacío, verifique la configuración del entorno")
	}
	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if IsPostgres(dsn) {
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			slog.Warn("retrying DB connection", "error", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// Basic connectivity test
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	slog.Info("database connected", "dsn", maskDSN(dsn))

	// MIGRATIONS=1 runs sql migrations via golang-migrate (Postgres only);
	// otherwise the AutoMigrate fallback creates the schema on startup.
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); (v == "1" || v == "true" || v == "yes") && IsPostgres(dsn) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []interface{}{&models.Factura{}, &models.Abono{}} {
			if migErr := conn.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required tables exist
	for _, table := range []string{"facturas", "abonos"} {
		if !conn.Migrator().HasTable(table) {
			return nil, fmt.Errorf("missing table after migration: %s", table)
		}
	}
	return conn, nil
}

func maskDSN(dsn string) string {
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	if u := regexp.MustCompile(`(://[^:/]+:)([^@]+)@`); u.MatchString(masked) {
		masked = u.ReplaceAllString(masked, `${1}***@`)
	}
	return masked
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
