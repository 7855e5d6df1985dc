// Package preferences implements the durable per-user settings store on
// PostgreSQL.
package preferences

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	// Registers the "pgx" driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/i474232898/weather-bot/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Postgres implements domain.PreferenceStore.
type Postgres struct {
	db *sql.DB
}

// Open connects with the given database/sql driver name ("pgx" or
// "postgres", both served by pgx) and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*Postgres, error) {
	const op = "preferences.Open"

	if driver == "postgres" {
		driver = "pgx"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return New(db), nil
}

// New wraps an already opened database.
func New(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// DB exposes the handle for migrations and shutdown.
func (p *Postgres) DB() *sql.DB {
	return p.db
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// Migrate brings the schema up to date using the embedded migrations.
func Migrate(db *sql.DB) error {
	const op = "preferences.Migrate"

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx_v5", driver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpsertLanguage inserts a record holding only the language, or updates the
// language of an existing one.
func (p *Postgres) UpsertLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	const op = "preferences.UpsertLanguage"

	query := `INSERT INTO users (user_id, language)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id) DO UPDATE SET language = EXCLUDED.language`
	if _, err := p.db.ExecContext(ctx, query, userID, string(lang)); err != nil {
		return domain.StoreError(op, err)
	}
	return nil
}

// GetPreferences returns the full record.
func (p *Postgres) GetPreferences(ctx context.Context, userID int64) (domain.UserPreferences, error) {
	const op = "preferences.GetPreferences"

	query := `SELECT language, latitude, longitude, temp_unit, wind_unit
			  FROM users
			  WHERE user_id = $1`

	var (
		lang, tempUnit, windUnit sql.NullString
		lat, lon                 sql.NullFloat64
	)
	err := p.db.QueryRowContext(ctx, query, userID).Scan(&lang, &lat, &lon, &tempUnit, &windUnit)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserPreferences{}, domain.StoreError(op, domain.ErrNotFound)
	}
	if err != nil {
		return domain.UserPreferences{}, domain.StoreError(op, err)
	}

	prefs := domain.UserPreferences{
		UserID:   userID,
		Language: domain.Language(lang.String),
	}
	if lat.Valid {
		prefs.Latitude = &lat.Float64
	}
	if lon.Valid {
		prefs.Longitude = &lon.Float64
	}
	if tempUnit.Valid {
		u := domain.TempUnit(tempUnit.String)
		prefs.TempUnit = &u
	}
	if windUnit.Valid {
		u := domain.WindUnit(windUnit.String)
		prefs.WindUnit = &u
	}
	return prefs, nil
}

// UpdateSettings applies the non-nil fields of s in one transaction. It never
// creates a record.
func (p *Postgres) UpdateSettings(ctx context.Context, userID int64, s domain.Settings) (err error) {
	const op = "preferences.UpdateSettings"

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.StoreError(op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// COALESCE keeps the stored value for fields not carried by the update.
	query := `UPDATE users
			  SET latitude  = COALESCE($2, latitude),
			      longitude = COALESCE($3, longitude),
			      temp_unit = COALESCE($4, temp_unit),
			      wind_unit = COALESCE($5, wind_unit)
			  WHERE user_id = $1`
	res, err := tx.ExecContext(ctx, query, userID,
		nullFloat(s.Latitude), nullFloat(s.Longitude), nullTempUnit(s.TempUnit), nullWindUnit(s.WindUnit))
	if err != nil {
		return domain.StoreError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.StoreError(op, err)
	}
	if n == 0 {
		err = domain.StoreError(op, domain.ErrNotFound)
		return err
	}
	if err = tx.Commit(); err != nil {
		return domain.StoreError(op, err)
	}
	return nil
}

// GetLanguage reads only the language field.
func (p *Postgres) GetLanguage(ctx context.Context, userID int64) (domain.Language, error) {
	const op = "preferences.GetLanguage"

	var lang sql.NullString
	err := p.db.QueryRowContext(ctx, `SELECT language FROM users WHERE user_id = $1`, userID).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LangUnset, domain.StoreError(op, domain.ErrNotFound)
	}
	if err != nil {
		return domain.LangUnset, domain.StoreError(op, err)
	}
	return domain.Language(lang.String), nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTempUnit(v *domain.TempUnit) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*v), Valid: true}
}

func nullWindUnit(v *domain.WindUnit) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*v), Valid: true}
}
