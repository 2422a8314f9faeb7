package db

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"benishangul-police/idregistry/internal/logging"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store owns the database handles for the whole registry. All repositories
// read the current handles through it, which lets a restore swap the
// underlying file while holding the write lock.
//
// Reads and ordinary writes take the read lock; Swap takes the write lock, so
// no request can observe a half-replaced database.
type Store struct {
	mu sync.RWMutex

	driver string
	path   string // sqlite file path, empty for postgres

	orm *gorm.DB
	sql *sqlx.DB
}

// Open connects both the GORM and sqlx handles using environment
// configuration. DB_DRIVER selects sqlite (default) or postgres.
func Open() (*Store, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverSQLite:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "registry.sqlite"
		}
		return OpenSQLite(path)
	case DriverPostgres:
		host := os.Getenv("PG_HOST")
		port := os.Getenv("PG_PORT")
		user := os.Getenv("PG_USER")
		dbname := os.Getenv("PG_DB")
		password := os.Getenv("PG_PASSWORD")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

// OpenSQLite opens a file-backed store at the given path.
func OpenSQLite(path string) (*Store, error) {
	orm, sql, err := openSQLiteHandles(path)
	if err != nil {
		return nil, err
	}
	return &Store{driver: DriverSQLite, path: path, orm: orm, sql: sql}, nil
}

func openSQLiteHandles(path string) (*gorm.DB, *sqlx.DB, error) {
	dsn := path + "?_busy_timeout=5000"

	orm, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite via gorm: %w", err)
	}

	sql, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite via sqlx: %w", err)
	}

	return orm, sql, nil
}

func openPostgres(dsn string) (*Store, error) {
	orm, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	var sql *sqlx.DB
	for i := 0; i < 10; i++ {
		sql, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres via sqlx: %w", err)
	}

	return &Store{driver: DriverPostgres, orm: orm, sql: sql}, nil
}

// Driver returns the active driver name.
func (s *Store) Driver() string { return s.driver }

// Path returns the sqlite file path, empty for postgres.
func (s *Store) Path() string { return s.path }

// Gorm returns the current GORM handle. The accessor itself takes no lock:
// callers must already hold the read lock — request handlers get it from the
// guard middleware, background workers take it per operation — and taking it
// again here could deadlock against a queued writer.
func (s *Store) Gorm() *gorm.DB { return s.orm }

// Sqlx returns the current sqlx handle under the same contract as Gorm.
func (s *Store) Sqlx() *sqlx.DB { return s.sql }

// RLock blocks while a swap is in progress. The request middleware holds it
// for the duration of every request.
func (s *Store) RLock()   { s.mu.RLock() }
func (s *Store) RUnlock() { s.mu.RUnlock() }

// Close closes both handles.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Store) closeLocked() error {
	if s.sql != nil {
		if err := s.sql.Close(); err != nil {
			return err
		}
	}
	if s.orm != nil {
		if db, err := s.orm.DB(); err == nil {
			return db.Close()
		}
	}
	return nil
}

// SnapshotTo streams a consistent copy of the sqlite file. The write lock is
// held so no insert lands mid-copy.
func (s *Store) SnapshotTo(w io.Writer) error {
	if s.driver != DriverSQLite {
		return fmt.Errorf("snapshot is only supported for the sqlite driver")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open database file: %w", err)
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// Swap replaces the underlying sqlite file with newFile and reopens both
// handles. No request runs concurrently: the store's write lock excludes
// every handler holding RLock.
func (s *Store) Swap(newFile string) error {
	if s.driver != DriverSQLite {
		return fmt.Errorf("restore is only supported for the sqlite driver")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.closeLocked(); err != nil {
		logging.Warn("failed to close handles before swap", "error", err.Error())
	}

	if err := os.Rename(newFile, s.path); err != nil {
		return fmt.Errorf("failed to replace database file: %w", err)
	}

	orm, sql, err := openSQLiteHandles(s.path)
	if err != nil {
		return fmt.Errorf("failed to reopen database after swap: %w", err)
	}

	s.orm = orm
	s.sql = sql
	logging.Info("database file swapped", "path", s.path)
	return nil
}
