package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

const defaultPoolSize = 10

var _ Store = (*PostgresStore)(nil)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = int32(n) //nolint:gosec // pool size from validated config
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...PostgresOption) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

func dealArgs(d *domain.Deal) (pgx.NamedArgs, error) {
	extra, err := json.Marshal(d.Extra)
	if err != nil {
		return nil, fmt.Errorf("marshaling deal extra: %w", err)
	}

	return pgx.NamedArgs{
		"deal_id":          d.ID,
		"title":            d.Title,
		"price_current":    d.PriceCurrent,
		"price_original":   d.PriceOriginal,
		"discount_rate":    d.DiscountRate,
		"source":           string(d.Source),
		"merchant":         d.Merchant,
		"url":              d.URL,
		"category":         d.Category,
		"posted_at":        d.PostedAt,
		"fingerprint":      d.Fingerprint,
		"popularity_score": d.PopularityScore,
		"trust_score":      d.TrustScore,
		"extra":            extra,
	}, nil
}

// InsertDeal inserts d unless a deal with the same id already exists. The
// returned bool is false for an existing id; that case is not an error.
func (s *PostgresStore) InsertDeal(ctx context.Context, d *domain.Deal) (bool, error) {
	args, err := dealArgs(d)
	if err != nil {
		return false, err
	}

	err = s.pool.QueryRow(ctx, queryInsertDeal, args).Scan(&d.CreatedAt)
	// ON CONFLICT DO NOTHING returns no rows.
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inserting deal %s: %w", d.ID, err)
	}
	return true, nil
}

// UpsertDeal inserts d or replaces the stored deal with the same id.
func (s *PostgresStore) UpsertDeal(ctx context.Context, d *domain.Deal) error {
	args, err := dealArgs(d)
	if err != nil {
		return err
	}

	if err := s.pool.QueryRow(ctx, queryUpsertDeal, args).Scan(&d.CreatedAt); err != nil {
		return fmt.Errorf("upserting deal %s: %w", d.ID, err)
	}
	return nil
}

// GetDeal retrieves a deal by id.
func (s *PostgresStore) GetDeal(ctx context.Context, id string) (*domain.Deal, error) {
	d := &domain.Deal{}
	err := scanDeal(s.pool.QueryRow(ctx, queryGetDeal, id), d)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting deal %s: %w", id, err)
	}
	return d, nil
}

// ListDeals queries deals with optional filters, returning results and total count.
func (s *PostgresStore) ListDeals(ctx context.Context, q *DealQuery) ([]domain.Deal, int, error) {
	if q == nil {
		q = &DealQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting deals: %w", err)
	}

	deals, err := s.queryDeals(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

// ListAllDeals returns every stored deal, newest first.
func (s *PostgresStore) ListAllDeals(ctx context.Context) ([]domain.Deal, error) {
	return s.queryDeals(ctx, queryListAllDeals)
}

// CountDeals returns the number of stored deals.
func (s *PostgresStore) CountDeals(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, queryCountDeals).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting deals: %w", err)
	}
	return n, nil
}

// UpsertProfile inserts or replaces a profile. created_at is kept from the
// first insert.
func (s *PostgresStore) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	args := pgx.NamedArgs{
		"profile_id":        p.ID,
		"categories":        nonNil(p.Categories),
		"keywords":          nonNil(p.Keywords),
		"brands":            nonNil(p.Brands),
		"exclude_keywords":  nonNil(p.ExcludeKeywords),
		"price_max":         p.PriceMax,
		"min_discount_rate": p.MinDiscountRate,
	}

	if err := s.pool.QueryRow(ctx, queryUpsertProfile, args).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("upserting profile %s: %w", p.ID, err)
	}
	return nil
}

// GetProfile retrieves a profile by id.
func (s *PostgresStore) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := scanProfile(s.pool.QueryRow(ctx, queryGetProfile, id), p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile %s: %w", id, err)
	}
	return p, nil
}

// ListProfiles returns all profiles, most recently updated first.
func (s *PostgresStore) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	rows, err := s.pool.Query(ctx, queryListProfiles)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// DeleteProfile removes a profile by id.
func (s *PostgresStore) DeleteProfile(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteProfile, id)
	if err != nil {
		return fmt.Errorf("deleting profile %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountProfiles returns the number of stored profiles.
func (s *PostgresStore) CountProfiles(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, queryCountProfiles).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting profiles: %w", err)
	}
	return n, nil
}

// CreateAlert inserts a new alert, silently ignoring duplicates.
func (s *PostgresStore) CreateAlert(ctx context.Context, a *domain.Alert) error {
	err := s.pool.QueryRow(ctx, queryCreateAlert,
		a.ProfileID, a.DealID, a.MatchScore,
	).Scan(&a.ID, &a.CreatedAt)

	// ON CONFLICT DO NOTHING returns no rows; treat as success.
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

// ListPendingAlerts returns all un-notified alerts, oldest first.
func (s *PostgresStore) ListPendingAlerts(ctx context.Context) ([]domain.Alert, error) {
	rows, err := s.pool.Query(ctx, queryListPendingAlerts)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(
			&a.ID, &a.ProfileID, &a.DealID, &a.MatchScore,
			&a.Notified, &a.NotifiedAt, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// MarkAlertsNotified marks multiple alerts as notified.
func (s *PostgresStore) MarkAlertsNotified(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, queryMarkAlertsNotified, ids); err != nil {
		return fmt.Errorf("marking alerts notified: %w", err)
	}
	return nil
}

// queryDeals runs a deal SELECT and scans every row.
func (s *PostgresStore) queryDeals(ctx context.Context, query string, args ...any) ([]domain.Deal, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying deals: %w", err)
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		var d domain.Deal
		if err := scanDeal(rows, &d); err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}
		deals = append(deals, d)
	}

	return deals, rows.Err()
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

// scanDeal scans a full deal row in selectDeals column order.
func scanDeal(row scannable, d *domain.Deal) error {
	var extra []byte
	if err := row.Scan(
		&d.ID, &d.Title, &d.PriceCurrent, &d.PriceOriginal, &d.DiscountRate,
		&d.Source, &d.Merchant, &d.URL, &d.Category, &d.PostedAt,
		&d.Fingerprint, &d.PopularityScore, &d.TrustScore, &extra, &d.CreatedAt,
	); err != nil {
		return err
	}
	return decodeExtra(extra, &d.Extra)
}

// decodeExtra unmarshals the deal sidecar. Empty input leaves the zero value.
func decodeExtra(raw []byte, e *domain.Extra) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, e); err != nil {
		return fmt.Errorf("unmarshaling deal extra: %w", err)
	}
	return nil
}

// scanProfile scans a full profile row in selectProfiles column order.
func scanProfile(row scannable, p *domain.Profile) error {
	return row.Scan(
		&p.ID, &p.Categories, &p.Keywords, &p.Brands, &p.ExcludeKeywords,
		&p.PriceMax, &p.MinDiscountRate, &p.CreatedAt, &p.UpdatedAt,
	)
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
