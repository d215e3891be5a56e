// Package sqlite stores articles in an embedded SQLite database (modernc.org/sqlite).
// Timestamps are kept as unix microseconds so exact-instant filters compare integers.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const articleColumns = `id, titulo, contenido, fecha, imagen`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ArticleSQLite implements repository.ArticleRepository on SQLite.
type ArticleSQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewArticleSQLite wraps an open SQLite handle whose schema has been migrated.
func NewArticleSQLite(db *sql.DB) *ArticleSQLite {
	return &ArticleSQLite{db: db, now: time.Now}
}

var _ repository.ArticleRepository = (*ArticleSQLite)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*model.Article, error) {
	var (
		a      model.Article
		micros int64
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Body, &micros, &a.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	a.CreatedAt = time.UnixMicro(micros).UTC()
	return &a, nil
}

func (s *ArticleSQLite) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	in := repository.PrepareNew(*a, s.now())
	_, err := s.db.ExecContext(ctx, `
INSERT INTO articulos (id, titulo, contenido, fecha, imagen)
VALUES (?, ?, ?, ?, ?)
`, in.ID, in.Title, in.Body, in.CreatedAt.UnixMicro(), in.Image)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return s.FindByID(ctx, in.ID)
}

func (s *ArticleSQLite) FindByID(ctx context.Context, id string) (*model.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articulos WHERE id = ?`, id)
	return scanArticle(row)
}

func (s *ArticleSQLite) FindAll(ctx context.Context, f repository.ArticleFilter) ([]model.Article, error) {
	var (
		conditions []string
		args       []any
	)
	if f.TitleContains != "" {
		conditions = append(conditions, `titulo LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(f.TitleContains)+"%")
	}
	if f.BodyContains != "" {
		conditions = append(conditions, `contenido LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(f.BodyContains)+"%")
	}
	if f.Image != "" {
		conditions = append(conditions, `imagen = ?`)
		args = append(args, f.Image)
	}
	if f.CreatedAt != nil {
		conditions = append(conditions, `fecha = ?`)
		args = append(args, f.CreatedAt.UnixMicro())
	}
	if f.CreatedOn != nil {
		start, end := f.DayBounds()
		conditions = append(conditions, `fecha >= ?`, `fecha < ?`)
		args = append(args, start.UnixMicro(), end.UnixMicro())
	}

	q := `SELECT ` + articleColumns + ` FROM articulos`
	if len(conditions) > 0 {
		q += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	q += ` ORDER BY fecha DESC, id DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var items []model.Article
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

func (s *ArticleSQLite) UpdateByID(ctx context.Context, id string, u repository.ArticleUpdate) (*model.Article, error) {
	if !u.IsEmpty() {
		res, err := s.db.ExecContext(ctx, `
UPDATE articulos
SET titulo = COALESCE(?, titulo), contenido = COALESCE(?, contenido), imagen = COALESCE(?, imagen)
WHERE id = ?
`, nullString(u.Title), nullString(u.Body), nullString(u.Image), id)
		if err != nil {
			return nil, fmt.Errorf("update article: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, repository.ErrNotFound
		}
	}
	return s.FindByID(ctx, id)
}

func (s *ArticleSQLite) DeleteByID(ctx context.Context, id string) (*model.Article, error) {
	a, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM articulos WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("delete article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
