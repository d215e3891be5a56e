package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zeebo/errs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
	"blogapi/internal/validator"
)

// Error classes returned by ArticleService. The HTTP layer maps them to 400, 404 and 500.
var (
	ErrInvalidInput = errs.Class("invalid input")
	ErrNotFound     = errs.Class("not found")
	ErrStorage      = errs.Class("storage")
)

const (
	dayLayout = "2006-01-02"

	msgInvalidDate  = "Formato de fecha no válido, use AAAA-MM-DD o RFC3339"
	msgInvalidLimit = "La cantidad debe ser un número positivo"
	msgIDRequired   = "El id del articulo es obligatorio"
)

var tracer = otel.Tracer("blogapi/internal/service")

// ImageUpload is an image received from a client, not yet stored.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// ListQuery carries the optional listing filters as received from the client.
type ListQuery struct {
	Title string
	Body  string
	Image string
	// Date is either a calendar day (2006-01-02, UTC) or an exact RFC3339 instant.
	Date  string
	Limit int
}

// ArticleListResult is the service-level DTO for a filtered listing.
type ArticleListResult struct {
	Items []model.Article `json:"articulos"`
	Total int             `json:"cantidad"`
}

// CleanupResult describes the best-effort removal of an image that happens after a commit.
type CleanupResult struct {
	Image     string
	Attempted bool
	Err       error
}

// CommitResult is returned once the database write has been committed.
// Cleanup reports what happened to the image that the write made obsolete.
type CommitResult struct {
	Article *model.Article
	Cleanup CleanupResult
}

// Err folds a failed cleanup into an ErrStorage error; nil when cleanup succeeded or was skipped.
func (r *CommitResult) Err() error {
	if r == nil || r.Cleanup.Err == nil {
		return nil
	}
	return ErrStorage.Wrap(fmt.Errorf("remove image %q: %w", r.Cleanup.Image, r.Cleanup.Err))
}

// ArticleService defines the use cases for handling articles.
type ArticleService interface {
	// Create validates fields and stores a new article with the default image.
	Create(ctx context.Context, fields model.ArticleFields) (*model.Article, error)

	// Get returns a single article by its ID.
	Get(ctx context.Context, id string) (*model.Article, error)

	// List returns the articles matching q, newest first. No match is ErrNotFound.
	List(ctx context.Context, q ListQuery) (*ArticleListResult, error)

	// Update replaces titulo and contenido and, when img is non-nil, the image.
	// The old image is removed only after the record has been updated.
	Update(ctx context.Context, id string, fields model.ArticleFields, img *ImageUpload) (*CommitResult, error)

	// ReplaceImage swaps the image of an article, removing the old one after the update.
	ReplaceImage(ctx context.Context, id string, img *ImageUpload) (*CommitResult, error)

	// Delete removes an article and then its non-default image.
	Delete(ctx context.Context, id string) (*CommitResult, error)

	// Image opens a stored image for streaming. The caller closes the reader.
	Image(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error)
}

// articleService is a concrete implementation of ArticleService.
type articleService struct {
	repo  repository.ArticleRepository
	store storage.Storage
	log   *zap.Logger
	now   func() time.Time
}

// NewArticleService constructs a new ArticleService.
func NewArticleService(repo repository.ArticleRepository, store storage.Storage, log *zap.Logger) ArticleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &articleService{
		repo:  repo,
		store: store,
		log:   log.Named("service"),
		now:   time.Now,
	}
}

func (s *articleService) Create(ctx context.Context, fields model.ArticleFields) (_ *model.Article, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.Create")
	defer func() { endSpan(span, err) }()

	if err := validator.ValidateArticleFields(fields); err != nil {
		return nil, ErrInvalidInput.Wrap(err)
	}

	stored, err := s.repo.Create(ctx, &model.Article{Title: fields.Title, Body: fields.Body})
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	span.SetAttributes(attribute.String("article.id", stored.ID))
	return stored, nil
}

func (s *articleService) Get(ctx context.Context, id string) (_ *model.Article, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.Get", trace.WithAttributes(attribute.String("article.id", id)))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput.Wrap(&validator.FieldError{Field: "id", Reason: msgIDRequired})
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return a, nil
}

func (s *articleService) List(ctx context.Context, q ListQuery) (_ *ArticleListResult, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.List")
	defer func() { endSpan(span, err) }()

	if q.Limit < 0 {
		return nil, ErrInvalidInput.Wrap(&validator.FieldError{Field: "cantidad", Reason: msgInvalidLimit})
	}

	b := repository.NewFilter().Title(q.Title).Body(q.Body).Image(q.Image).Limit(q.Limit)
	if date := strings.TrimSpace(q.Date); date != "" {
		if day, perr := time.Parse(dayLayout, date); perr == nil {
			b.CreatedOn(day)
		} else if at, perr := time.Parse(time.RFC3339Nano, date); perr == nil {
			b.CreatedAt(at)
		} else {
			return nil, ErrInvalidInput.Wrap(&validator.FieldError{Field: "fecha", Reason: msgInvalidDate})
		}
	}

	items, err := s.repo.FindAll(ctx, b.Build())
	if err != nil {
		return nil, repoErr(err)
	}
	span.SetAttributes(attribute.Int("article.count", len(items)))
	return &ArticleListResult{Items: items, Total: len(items)}, nil
}

func (s *articleService) Update(ctx context.Context, id string, fields model.ArticleFields, img *ImageUpload) (_ *CommitResult, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.Update", trace.WithAttributes(attribute.String("article.id", id)))
	defer func() { endSpan(span, err) }()

	staged, err := s.stage(ctx, img)
	if err != nil {
		return nil, err
	}

	if err := validator.ValidateArticleFields(fields); err != nil {
		s.discard(ctx, staged)
		return nil, ErrInvalidInput.Wrap(err)
	}
	if staged != "" {
		if err := validator.ValidateImageUpload(img.Filename, true); err != nil {
			s.discard(ctx, staged)
			return nil, ErrInvalidInput.Wrap(err)
		}
	}

	old, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.discard(ctx, staged)
		return nil, repoErr(err)
	}

	upd := repository.ArticleUpdate{Title: &fields.Title, Body: &fields.Body}
	if staged != "" {
		upd.Image = &staged
	}
	updated, err := s.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		s.discard(ctx, staged)
		return nil, repoErr(err)
	}

	res := &CommitResult{Article: updated}
	if staged != "" && old.Image != staged {
		res.Cleanup = s.cleanup(ctx, old.Image)
	}
	return res, nil
}

func (s *articleService) ReplaceImage(ctx context.Context, id string, img *ImageUpload) (_ *CommitResult, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.ReplaceImage", trace.WithAttributes(attribute.String("article.id", id)))
	defer func() { endSpan(span, err) }()

	if img == nil || img.Reader == nil {
		return nil, ErrInvalidInput.Wrap(validator.ValidateImageUpload("", false))
	}

	staged, err := s.stage(ctx, img)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateImageUpload(img.Filename, true); err != nil {
		s.discard(ctx, staged)
		return nil, ErrInvalidInput.Wrap(err)
	}

	old, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.discard(ctx, staged)
		return nil, repoErr(err)
	}

	updated, err := s.repo.UpdateByID(ctx, id, repository.ArticleUpdate{Image: &staged})
	if err != nil {
		s.discard(ctx, staged)
		return nil, repoErr(err)
	}

	return &CommitResult{Article: updated, Cleanup: s.cleanup(ctx, old.Image)}, nil
}

func (s *articleService) Delete(ctx context.Context, id string) (_ *CommitResult, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.Delete", trace.WithAttributes(attribute.String("article.id", id)))
	defer func() { endSpan(span, err) }()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, repoErr(err)
	}
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return &CommitResult{Article: deleted, Cleanup: s.cleanup(ctx, deleted.Image)}, nil
}

func (s *articleService) Image(ctx context.Context, name string) (_ io.ReadCloser, _ storage.ObjectInfo, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.Image", trace.WithAttributes(attribute.String("image.name", name)))
	defer func() { endSpan(span, err) }()

	rc, info, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			return nil, storage.ObjectInfo{}, ErrNotFound.Wrap(err)
		}
		return nil, storage.ObjectInfo{}, ErrStorage.Wrap(err)
	}
	return rc, info, nil
}

// stage stores an upload under a generated name before it is validated.
// It returns "" when there is nothing to stage.
func (s *articleService) stage(ctx context.Context, img *ImageUpload) (string, error) {
	if img == nil || img.Reader == nil {
		return "", nil
	}
	name := storage.GenerateName(img.Filename, s.now())
	if _, err := s.store.Put(ctx, name, img.Reader, storage.PutObjectOptions{
		Size:        img.Size,
		ContentType: img.ContentType,
		Metadata:    map[string]string{"original-filename": img.Filename},
	}); err != nil {
		return "", ErrStorage.Wrap(fmt.Errorf("stage image: %w", err))
	}
	return name, nil
}

// discard removes a staged upload that will not be committed.
func (s *articleService) discard(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.store.Delete(ctx, name); err != nil {
		s.log.Warn("staged image cleanup failed", zap.String("image", name), zap.Error(err))
	}
}

// cleanup removes an image made obsolete by a committed write. The sentinel is never touched.
func (s *articleService) cleanup(ctx context.Context, name string) CleanupResult {
	res := CleanupResult{Image: name}
	if name == "" || name == model.DefaultImage {
		return res
	}
	res.Attempted = true
	if err := s.store.Delete(ctx, name); err != nil {
		res.Err = err
		s.log.Warn("image cleanup failed", zap.String("image", name), zap.Error(err))
		trace.SpanFromContext(ctx).AddEvent("image cleanup failed",
			trace.WithAttributes(attribute.String("image.name", name)))
	}
	return res
}

func repoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound.Wrap(err)
	}
	return ErrStorage.Wrap(err)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
