package config

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DBSettings struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
}

// DSN renders the go-sql-driver/mysql data source name.
func (s DBSettings) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		s.Username,
		s.Password,
		s.Host,
		s.Port,
		s.Database,
	)
}

// DBPool owns the process-wide gorm handle. The connection is opened on the
// first Ensure call; later calls return the same handle. A failed attempt is
// not cached, so the next request retries the dial.
type DBPool struct {
	mu       sync.Mutex
	db       *gorm.DB
	open     func() (*gorm.DB, error)
	settings DBSettings
}

// NewDBPool prepares a pool for the given settings. SQL statements are logged
// to out at Info level unless production is set and debugSQL is not.
func NewDBPool(settings DBSettings, out io.Writer, production, debugSQL bool) *DBPool {
	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if production && !debugSQL {
		logLevel = logger.Warn
	}

	cfg := &gorm.Config{
		Logger: logger.New(
			log.New(out, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
		TranslateError: true,
	}

	return &DBPool{
		settings: settings,
		open: func() (*gorm.DB, error) {
			return gorm.Open(mysql.Open(settings.DSN()), cfg)
		},
	}
}

// NewDBPoolFromDB wraps an already-open handle.
func NewDBPoolFromDB(db *gorm.DB) *DBPool {
	return &DBPool{db: db}
}

// Ensure returns the shared handle, connecting if needed.
func (p *DBPool) Ensure(ctx context.Context) (*gorm.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db.WithContext(ctx), nil
	}
	if p.open == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	db, err := p.open()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	p.db = db
	return p.db.WithContext(ctx), nil
}

// Close releases the underlying sql.DB if one was opened.
func (p *DBPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	p.db = nil
	return sqlDB.Close()
}
