package store

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

// Postgres reads document collections out of jsonb tables. It implements
// Loader; the Put method exists only for the seed tooling.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// NewPool creates a pgxpool and verifies connectivity.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// Ping reports store connectivity, used by readiness checks.
func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *Postgres) Employees(ctx context.Context, filters ...Filter) ([]domain.Employee, error) {
	return listDocs[domain.Employee](ctx, p, CollectionEmployees, filters)
}

func (p *Postgres) Projects(ctx context.Context, filters ...Filter) ([]domain.Project, error) {
	return listDocs[domain.Project](ctx, p, CollectionProjects, filters)
}

func (p *Postgres) Teams(ctx context.Context, filters ...Filter) ([]domain.Team, error) {
	return listDocs[domain.Team](ctx, p, CollectionTeams, filters)
}

func (p *Postgres) Tasks(ctx context.Context, filters ...Filter) ([]domain.Task, error) {
	return listDocs[domain.Task](ctx, p, CollectionTasks, filters)
}

// Put upserts one raw document. Only the seed subcommand writes; the engine
// itself is read-only against the store.
func (p *Postgres) Put(ctx context.Context, collection, id string, doc any) error {
	if err := validIdent(collection); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", collection, err)
	}
	_, err = p.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc
	`, collection), id, data)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func listDocs[T any](ctx context.Context, p *Postgres, collection string, filters []Filter) ([]T, error) {
	sql, args, err := buildQuery(collection, filters)
	if err != nil {
		return nil, &domain.CollectionFetchError{Collection: collection, Err: err}
	}

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, &domain.CollectionFetchError{Collection: collection, Err: err}
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, &domain.CollectionFetchError{Collection: collection, Err: err}
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, &domain.CollectionFetchError{Collection: collection, Err: fmt.Errorf("decode document: %w", err)}
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.CollectionFetchError{Collection: collection, Err: err}
	}
	return out, nil
}

// buildQuery renders the predicate list into jsonb field conditions. An In
// filter with no values matches nothing, which short-circuits to WHERE FALSE
// instead of an invalid ANY clause.
func buildQuery(collection string, filters []Filter) (string, []any, error) {
	if err := validIdent(collection); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT doc FROM %s", collection)

	var args []any
	conds := make([]string, 0, len(filters))
	for _, f := range filters {
		if err := validIdent(f.Field); err != nil {
			return "", nil, err
		}
		switch {
		case len(f.In) > 0:
			args = append(args, f.In)
			conds = append(conds, fmt.Sprintf("doc->>'%s' = ANY($%d)", f.Field, len(args)))
		case f.In != nil:
			conds = append(conds, "FALSE")
		default:
			args = append(args, f.Eq)
			conds = append(conds, fmt.Sprintf("doc->>'%s' = $%d", f.Field, len(args)))
		}
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY id")
	return b.String(), args, nil
}

var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func validIdent(s string) error {
	if !identPattern.MatchString(s) {
		return fmt.Errorf("invalid identifier %q", s)
	}
	return nil
}
