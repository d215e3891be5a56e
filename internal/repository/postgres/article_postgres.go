package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const articleColumns = `id, titulo, contenido, fecha, imagen`

// ArticlePostgres is a PostgreSQL implementation of repository.ArticleRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ArticlePostgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewArticlePostgres creates a new ArticlePostgres repository.
func NewArticlePostgres(db *sql.DB) *ArticlePostgres {
	return &ArticlePostgres{db: db, now: time.Now}
}

var _ repository.ArticleRepository = (*ArticlePostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*model.Article, error) {
	var a model.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt, &a.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

// Create inserts a new article row and returns the stored record.
func (r *ArticlePostgres) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	in := repository.PrepareNew(*a, r.now())
	const q = `
		INSERT INTO articulos (id, titulo, contenido, fecha, imagen)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + articleColumns
	row := r.db.QueryRowContext(ctx, q, in.ID, in.Title, in.Body, in.CreatedAt, in.Image)
	out, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return out, nil
}

// FindByID fetches a single article by its ID.
func (r *ArticlePostgres) FindByID(ctx context.Context, id string) (*model.Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articulos WHERE id = $1`
	return scanArticle(r.db.QueryRowContext(ctx, q, id))
}

// FindAll returns filtered articles ordered newest first.
func (r *ArticlePostgres) FindAll(ctx context.Context, f repository.ArticleFilter) ([]model.Article, error) {
	where, args := BuildWhereClause(f)
	q := `SELECT ` + articleColumns + ` FROM articulos`
	if where != "" {
		q += " " + where
	}
	q += ` ORDER BY fecha DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	items := make([]model.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return items, nil
}

// UpdateByID applies the non-nil fields of u and returns the updated row.
func (r *ArticlePostgres) UpdateByID(ctx context.Context, id string, u repository.ArticleUpdate) (*model.Article, error) {
	if u.IsEmpty() {
		return r.FindByID(ctx, id)
	}
	const q = `
		UPDATE articulos
		SET titulo    = COALESCE($2, titulo),
		    contenido = COALESCE($3, contenido),
		    imagen    = COALESCE($4, imagen)
		WHERE id = $1
		RETURNING ` + articleColumns
	row := r.db.QueryRowContext(ctx, q, id, nullString(u.Title), nullString(u.Body), nullString(u.Image))
	return scanArticle(row)
}

// DeleteByID removes an article and returns the deleted row.
func (r *ArticlePostgres) DeleteByID(ctx context.Context, id string) (*model.Article, error) {
	const q = `DELETE FROM articulos WHERE id = $1 RETURNING ` + articleColumns
	return scanArticle(r.db.QueryRowContext(ctx, q, id))
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
