// Package inpsql provides data types and methods for PSQL storage operations.
package inpsql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modellink"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
	storageErrors "github.com/dcslol/dcs_go_invite_shortener/internal/storage/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.Storage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu  sync.Mutex
	Cfg *config.StorageConfig
	DB  *sqlx.DB
}

// InitStorage initializes a Storage object, sets its attributes and starts a closure listener.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.StorageConfig) (*Storage, error) {
	db, err := sqlx.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	st := Storage{
		Cfg: cfg,
		DB:  db,
	}
	err = st.createTables(ctx)
	if err != nil {
		return nil, err
	}
	go func() {
		defer wg.Done()
		<-ctx.Done()
		err := st.DB.Close()
		if err != nil {
			log.Error().Err(err).Msg("PSQL DB connection closure failed")
			return
		}
		log.Info().Msg("PSQL DB connection closed successfully")
	}()
	return &st, nil
}

// CreateUnique persists a new link and maps a unique violation to AlreadyExistsError.
func (s *Storage) CreateUnique(ctx context.Context, shortID string, URL string, ownerID string) (modellink.Link, error) {
	query := `INSERT INTO links (short_id, url, owner_id) VALUES ($1, $2, $3)`
	createDone := make(chan modellink.Link)
	createError := make(chan error)
	go func() {
		_, err := s.DB.ExecContext(ctx, query, shortID, URL, ownerID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				createError <- &storageErrors.AlreadyExistsError{ID: shortID, Err: err}
				return
			}
			createError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		createDone <- modellink.Link{ShortID: shortID, OriginalURL: URL, OwnerID: ownerID}
	}()

	select {
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Str("short_id", shortID).Msg("creating link timed out")
		return modellink.Link{}, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case err := <-createError:
		return modellink.Link{}, err
	case link := <-createDone:
		return link, nil
	}
}

// Retrieve returns the link stored under shortID.
func (s *Storage) Retrieve(ctx context.Context, shortID string) (modellink.Link, error) {
	query := `SELECT id, short_id, url, owner_id, clicks FROM links WHERE short_id = $1`
	retrieveDone := make(chan modellink.Link)
	retrieveError := make(chan error)
	go func() {
		var row modelstorage.LinkPostgresEntry
		err := s.DB.GetContext(ctx, &row, query, shortID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				retrieveError <- &storageErrors.NotFoundError{ID: shortID, Err: err}
				return
			}
			retrieveError <- &storageErrors.ScanningPSQLError{Err: err}
			return
		}
		retrieveDone <- modellink.Link{ShortID: row.ShortID, OriginalURL: row.URL, OwnerID: row.OwnerID, Clicks: row.Clicks}
	}()

	select {
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Str("short_id", shortID).Msg("retrieving link timed out")
		return modellink.Link{}, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case err := <-retrieveError:
		return modellink.Link{}, err
	case link := <-retrieveDone:
		return link, nil
	}
}

// RetrieveByOwnerID returns all links owned by one particular user ID.
func (s *Storage) RetrieveByOwnerID(ctx context.Context, ownerID string) ([]modellink.Link, error) {
	query := `SELECT id, short_id, url, owner_id, clicks FROM links WHERE owner_id = $1`
	var rows []modelstorage.LinkPostgresEntry
	err := s.DB.SelectContext(ctx, &rows, query, ownerID)
	if err != nil {
		return nil, &storageErrors.ScanningPSQLError{Err: err}
	}
	var links []modellink.Link
	for _, row := range rows {
		links = append(links, modellink.Link{ShortID: row.ShortID, OriginalURL: row.URL, OwnerID: row.OwnerID, Clicks: row.Clicks})
	}
	return links, nil
}

// IncrementClicks performs the increment as a single atomic read-modify-write inside
// the database so that concurrent clicks never lose an update.
func (s *Storage) IncrementClicks(ctx context.Context, shortID string) (int64, error) {
	query := `UPDATE links SET clicks = clicks + 1 WHERE short_id = $1 RETURNING clicks`
	incrementDone := make(chan int64)
	incrementError := make(chan error)
	go func() {
		var clicks int64
		err := s.DB.GetContext(ctx, &clicks, query, shortID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				incrementError <- &storageErrors.NotFoundError{ID: shortID, Err: err}
				return
			}
			incrementError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		incrementDone <- clicks
	}()

	select {
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Str("short_id", shortID).Msg("incrementing clicks timed out")
		return 0, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case err := <-incrementError:
		return 0, err
	case clicks := <-incrementDone:
		return clicks, nil
	}
}

// Rename moves a link to a new shortID re-checking uniqueness via the unique index.
func (s *Storage) Rename(ctx context.Context, oldID string, newID string) error {
	query := `UPDATE links SET short_id = $2 WHERE short_id = $1`
	res, err := s.DB.ExecContext(ctx, query, oldID, newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return &storageErrors.AlreadyExistsError{ID: newID, Err: err}
		}
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if affected == 0 {
		return &storageErrors.NotFoundError{ID: oldID}
	}
	return nil
}

// UpsertByExternalID creates or refreshes an identity and returns the local user ID.
func (s *Storage) UpsertByExternalID(ctx context.Context, externalID string, username string, avatarURL string) (string, error) {
	query := `INSERT INTO users (id, external_id, username, avatar_url)
		VALUES (gen_random_uuid(), $1, $2, $3)
		ON CONFLICT (external_id)
		DO UPDATE SET username = $2, avatar_url = $3
		RETURNING id`
	var localID string
	err := s.DB.GetContext(ctx, &localID, query, externalID, username, avatarURL)
	if err != nil {
		return "", &storageErrors.ExecutionPSQLError{Err: err}
	}
	return localID, nil
}

// List returns all webhook subscriptions.
func (s *Storage) List(ctx context.Context) ([]modelstorage.WebhookSubscription, error) {
	query := `SELECT id, url, events, format, active, total_calls, last_triggered_at FROM webhooks`
	rows, err := s.DB.QueryxContext(ctx, query)
	if err != nil {
		return nil, &storageErrors.ScanningPSQLError{Err: err}
	}
	defer rows.Close()
	var subs []modelstorage.WebhookSubscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, &storageErrors.ScanningPSQLError{Err: err}
	}
	return subs, nil
}

// Get returns one webhook subscription by its ID.
func (s *Storage) Get(ctx context.Context, id string) (modelstorage.WebhookSubscription, error) {
	query := `SELECT id, url, events, format, active, total_calls, last_triggered_at FROM webhooks WHERE id = $1`
	rows, err := s.DB.QueryxContext(ctx, query, id)
	if err != nil {
		return modelstorage.WebhookSubscription{}, &storageErrors.ScanningPSQLError{Err: err}
	}
	defer rows.Close()
	if !rows.Next() {
		return modelstorage.WebhookSubscription{}, &storageErrors.NotFoundError{ID: id}
	}
	return scanSubscription(rows)
}

// Upsert stores a webhook subscription, assigning an ID when absent.
func (s *Storage) Upsert(ctx context.Context, sub modelstorage.WebhookSubscription) error {
	query := `INSERT INTO webhooks (id, url, events, format, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET url = $2, events = $3, format = $4, active = $5`
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	_, err := s.DB.ExecContext(ctx, query, sub.ID, sub.URL, strings.Join(sub.Events, ","), string(sub.Format), sub.Active)
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	return nil
}

// Delete removes a webhook subscription.
func (s *Storage) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM webhooks WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if affected == 0 {
		return &storageErrors.NotFoundError{ID: id}
	}
	return nil
}

// RecordDelivery books an attempted delivery against a subscription.
func (s *Storage) RecordDelivery(ctx context.Context, id string, success bool, at time.Time) error {
	query := `UPDATE webhooks SET total_calls = total_calls + $2, last_triggered_at = $3 WHERE id = $1`
	increment := 0
	if success {
		increment = 1
	}
	res, err := s.DB.ExecContext(ctx, query, id, increment, at)
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if affected == 0 {
		return &storageErrors.NotFoundError{ID: id}
	}
	return nil
}

// PingDB pings the PSQL DB.
func (s *Storage) PingDB() error {
	return s.DB.Ping()
}

// CloseDB closes the PSQL DB connection.
func (s *Storage) CloseDB() error {
	return s.DB.Close()
}

type subscriptionScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(rows subscriptionScanner) (modelstorage.WebhookSubscription, error) {
	var sub modelstorage.WebhookSubscription
	var events string
	var lastTriggeredAt sql.NullTime
	err := rows.Scan(&sub.ID, &sub.URL, &events, &sub.Format, &sub.Active, &sub.TotalCalls, &lastTriggeredAt)
	if err != nil {
		return modelstorage.WebhookSubscription{}, &storageErrors.ScanningPSQLError{Err: err}
	}
	if events != "" {
		sub.Events = strings.Split(events, ",")
	}
	if lastTriggeredAt.Valid {
		sub.LastTriggeredAt = &lastTriggeredAt.Time
	}
	return sub, nil
}

// createTables creates relations for PSQL DB storage if not exist.
func (s *Storage) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS links (
		id bigserial not null,
		short_id text not null unique,
		url text not null,
		owner_id text not null default '',
		clicks bigint not null default 0
	);`,
		`CREATE TABLE IF NOT EXISTS users (
		id uuid primary key,
		external_id text not null unique,
		username text not null,
		avatar_url text not null default ''
	);`,
		`CREATE TABLE IF NOT EXISTS webhooks (
		id text primary key,
		url text not null,
		events text not null default '',
		format text not null default 'custom',
		active boolean not null default true,
		total_calls bigint not null default 0,
		last_triggered_at timestamptz
	);`,
	}
	for _, query := range queries {
		_, err := s.DB.ExecContext(ctx, query)
		if err != nil {
			return err
		}
	}
	return nil
}
