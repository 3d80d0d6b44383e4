package achievement

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFS embed.FS

// Dialect selects the SQL driver and migration set
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQLConfig holds configuration for the SQL achievement repository
type SQLConfig struct {
	Dialect Dialect

	// DSN is a file path for sqlite or a connection string for postgres
	DSN string

	Logger *zerolog.Logger
}

type sqlRepository struct {
	dialect Dialect
	db      *sql.DB
	log     zerolog.Logger
}

// NewSQL opens the database, applies migrations and returns the repository
func NewSQL(ctx context.Context, cfg *SQLConfig) (*sqlRepository, error) {
	if cfg == nil {
		return nil, errNilConfig
	}

	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("dsn cannot be empty")
	}

	var driverName, gooseDialect string
	switch cfg.Dialect {
	case DialectSQLite:
		driverName, gooseDialect = "sqlite", "sqlite3"
	case DialectPostgres:
		driverName, gooseDialect = "pgx", "postgres"
	default:
		return nil, fmt.Errorf("unsupported dialect %q", cfg.Dialect)
	}

	log := logger.OrNop(cfg.Logger)

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Dialect, err)
	}

	if cfg.Dialect == DialectSQLite {
		// modernc sqlite serializes writers; one connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.Dialect, err)
	}

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect(gooseDialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations/"+string(cfg.Dialect)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run goose migrations: %w", err)
	}

	log.Info().Str("dialect", string(cfg.Dialect)).Msg("achievement store ready")

	return &sqlRepository{
		dialect: cfg.Dialect,
		db:      db,
		log:     log,
	}, nil
}

// Close releases the underlying database handle
func (r *sqlRepository) Close() error {
	return r.db.Close()
}

func (r *sqlRepository) bind(pos int) string {
	if r.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}

// InsertUnlock relies on UNIQUE(character_id, achievement_key); a conflicting
// row is left untouched and reported as not inserted
func (r *sqlRepository) InsertUnlock(ctx context.Context, input *InsertUnlockInput) (*InsertUnlockOutput, error) {
	if err := validateUnlock(input); err != nil {
		return nil, err
	}

	unlock := input.Unlock

	query := fmt.Sprintf(
		`INSERT INTO achievement_unlocks (id, character_id, achievement_key, xp_reward, unlocked_at)
		VALUES (%s, %s, %s, %s, %s)
		ON CONFLICT (character_id, achievement_key) DO NOTHING`,
		r.bind(1), r.bind(2), r.bind(3), r.bind(4), r.bind(5),
	)

	res, err := r.db.ExecContext(ctx, query,
		unlock.ID,
		unlock.CharacterID,
		unlock.AchievementKey,
		unlock.XPReward,
		unlock.UnlockedAt.UnixMicro(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert unlock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return &InsertUnlockOutput{
		Inserted: affected > 0,
	}, nil
}

// ListUnlocks returns the unlocks stored for a character
func (r *sqlRepository) ListUnlocks(ctx context.Context, input *ListUnlocksInput) (*ListUnlocksOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errEmptyCharacter
	}

	query := fmt.Sprintf(
		`SELECT id, character_id, achievement_key, xp_reward, unlocked_at
		FROM achievement_unlocks
		WHERE character_id = %s
		ORDER BY unlocked_at, achievement_key`,
		r.bind(1),
	)

	rows, err := r.db.QueryContext(ctx, query, input.CharacterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocks: %w", err)
	}
	defer rows.Close()

	unlocks := make([]*models.AchievementUnlock, 0)
	for rows.Next() {
		var (
			unlock     models.AchievementUnlock
			unlockedAt int64
		)
		if err := rows.Scan(&unlock.ID, &unlock.CharacterID, &unlock.AchievementKey, &unlock.XPReward, &unlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unlock: %w", err)
		}
		unlock.UnlockedAt = time.UnixMicro(unlockedAt).UTC()
		unlocks = append(unlocks, &unlock)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unlocks: %w", err)
	}

	return &ListUnlocksOutput{
		Unlocks: unlocks,
	}, nil
}
