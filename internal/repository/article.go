package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/model"
)

// ErrNotFound is returned when no article matches an id or a filter.
var ErrNotFound = errors.New("article not found")

// ArticleRepository defines data access for articles.
// Persistence only; business rules live in the service.
type ArticleRepository interface {
	// Create stores a new article after PrepareNew has filled id, fecha and imagen.
	// Returns the stored article.
	Create(ctx context.Context, a *model.Article) (*model.Article, error)

	// FindByID returns an article by its ID.
	FindByID(ctx context.Context, id string) (*model.Article, error)

	// FindAll returns the articles matching f, newest first.
	// It returns ErrNotFound instead of an empty slice when nothing matches.
	FindAll(ctx context.Context, f ArticleFilter) ([]model.Article, error)

	// UpdateByID merges the non-nil fields of u into the stored article. fecha is never touched.
	UpdateByID(ctx context.Context, id string, u ArticleUpdate) (*model.Article, error)

	// DeleteByID removes an article and returns the removed record.
	DeleteByID(ctx context.Context, id string) (*model.Article, error)
}

// ArticleUpdate carries a partial update; nil fields are left unchanged.
type ArticleUpdate struct {
	Title *string
	Body  *string
	Image *string
}

// IsEmpty reports whether the update would change nothing.
func (u ArticleUpdate) IsEmpty() bool {
	return u.Title == nil && u.Body == nil && u.Image == nil
}

// PrepareNew returns a copy of a with server-side defaults applied.
func PrepareNew(a model.Article, now time.Time) model.Article {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now.UTC()
	}
	if a.Image == "" {
		a.Image = model.DefaultImage
	}
	return a
}

// ArticleFilter is the query spec for FindAll. Build it with NewFilter.
type ArticleFilter struct {
	TitleContains string
	BodyContains  string
	Image         string
	CreatedAt     *time.Time
	CreatedOn     *time.Time
	Limit         int
}

// FilterBuilder assembles an ArticleFilter from optional criteria.
type FilterBuilder struct {
	f ArticleFilter
}

// NewFilter starts an empty filter that matches every article.
func NewFilter() *FilterBuilder {
	return &FilterBuilder{}
}

// Title matches articles whose titulo contains s, ignoring case.
func (b *FilterBuilder) Title(s string) *FilterBuilder {
	b.f.TitleContains = strings.TrimSpace(s)
	return b
}

// Body matches articles whose contenido contains s, ignoring case.
func (b *FilterBuilder) Body(s string) *FilterBuilder {
	b.f.BodyContains = strings.TrimSpace(s)
	return b
}

// Image matches articles whose imagen equals name.
func (b *FilterBuilder) Image(name string) *FilterBuilder {
	b.f.Image = strings.TrimSpace(name)
	return b
}

// CreatedAt matches articles created at exactly t.
func (b *FilterBuilder) CreatedAt(t time.Time) *FilterBuilder {
	t = t.UTC()
	b.f.CreatedAt = &t
	b.f.CreatedOn = nil
	return b
}

// CreatedOn matches articles created on the UTC calendar day of t.
func (b *FilterBuilder) CreatedOn(t time.Time) *FilterBuilder {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	b.f.CreatedOn = &day
	b.f.CreatedAt = nil
	return b
}

// Limit caps the number of results; n <= 0 means no cap.
func (b *FilterBuilder) Limit(n int) *FilterBuilder {
	if n < 0 {
		n = 0
	}
	b.f.Limit = n
	return b
}

// Build returns the assembled filter.
func (b *FilterBuilder) Build() ArticleFilter {
	return b.f
}

// DayBounds returns the half-open [start, end) range covered by CreatedOn.
func (f ArticleFilter) DayBounds() (start, end time.Time) {
	start = *f.CreatedOn
	return start, start.AddDate(0, 0, 1)
}
