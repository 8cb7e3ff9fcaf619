package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

// DefaultPostgresQuery selects the secret of one domain.
const DefaultPostgresQuery = "SELECT secret FROM bss_domains WHERE domain = $1"

// Postgres looks secrets up with a parameterized query taking the domain
// as its only argument and returning one text or bytea column.
type Postgres struct {
	db    *sql.DB
	query string
}

// OpenPostgres connects with a lib/pq DSN and checks the connection.
func OpenPostgres(ctx context.Context, dsn, query string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return NewPostgres(db, query), nil
}

// NewPostgres creates a source on an open database. An empty query selects
// DefaultPostgresQuery.
func NewPostgres(db *sql.DB, query string) *Postgres {
	if query == "" {
		query = DefaultPostgresQuery
	}
	return &Postgres{db: db, query: query}
}

// Lookup returns the secret of a domain.
func (p *Postgres) Lookup(ctx context.Context, domainName string) ([]byte, error) {
	var secret []byte
	err := p.db.QueryRowContext(ctx, p.query, domainName).Scan(&secret)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && len(secret) == 0) {
		return nil, domain.ErrUnknownDomain.WithDetails(domainName)
	}
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("postgres credential lookup").WithCause(err)
	}
	return secret, nil
}

// Close closes the database.
func (p *Postgres) Close() error {
	return p.db.Close()
}
