package handler

import (
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/internal/validator"
)

const (
	fileField        = "file"
	msgDeleted       = "Articulo eliminado"
	msgInvalidAmount = "La cantidad debe ser un número positivo"
)

// articleResponse is the success envelope for a single article.
type articleResponse struct {
	Status  string         `json:"status" example:"Success"`
	Article *model.Article `json:"articulo"`
}

// articleListResponse is the success envelope for a listing.
type articleListResponse struct {
	Status   string          `json:"status" example:"Success"`
	Total    int             `json:"cantidad"`
	Articles []model.Article `json:"articulos"`
}

// deleteResponse confirms a deletion with the removed article's title.
type deleteResponse struct {
	Status  string `json:"status" example:"Success"`
	Message string `json:"mensaje"`
	Article string `json:"articulo"`
}

// CreateArticle godoc
//
//	@Summary		Create an article
//	@Description	Stores a new article with the default image
//	@Tags			Articulos
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			body	body		model.ArticleFields	true	"Article fields"
//	@Success		200		{object}	articleResponse
//	@Failure		400		{object}	errorPayload
//	@Failure		500		{object}	errorPayload
//	@Router			/articulos [post]
func CreateArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fields model.ArticleFields
		if err := c.BodyParser(&fields); err != nil {
			return writeError(c, fiber.StatusBadRequest, codeInvalidInput, msgInvalidInput)
		}

		a, err := svc.Create(c.UserContext(), fields)
		if err != nil {
			return writeServiceError(c, err, msgArticleNotFound)
		}
		return c.JSON(articleResponse{Status: statusSuccess, Article: a})
	}
}

// ListArticles godoc
//
//	@Summary		List articles
//	@Description	Newest first. Text filters are case-insensitive substrings; fecha is a day (YYYY-MM-DD) or an RFC3339 instant
//	@Tags			Articulos
//	@Produce		json
//	@Param			titulo		query		string	false	"Title contains"
//	@Param			contenido	query		string	false	"Body contains"
//	@Param			imagen		query		string	false	"Exact image name"
//	@Param			fecha		query		string	false	"Creation day or instant"
//	@Param			cantidad	query		int		false	"Maximum number of results"
//	@Success		200			{object}	articleListResponse
//	@Failure		400			{object}	errorPayload
//	@Failure		404			{object}	errorPayload
//	@Router			/articulos [get]
func ListArticles(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := service.ListQuery{
			Title: c.Query("titulo"),
			Body:  c.Query("contenido"),
			Image: c.Query("imagen"),
			Date:  c.Query("fecha"),
		}
		if s := strings.TrimSpace(c.Query("cantidad")); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, codeInvalidInput, msgInvalidAmount)
			}
			q.Limit = n
		}

		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			return writeServiceError(c, err, msgNoArticles)
		}
		return c.JSON(articleListResponse{Status: statusSuccess, Total: res.Total, Articles: res.Items})
	}
}

// GetArticle godoc
//
//	@Summary		Get an article
//	@Tags			Articulos
//	@Produce		json
//	@Param			id	path		string	true	"Article ID (UUID)"
//	@Success		200	{object}	articleResponse
//	@Failure		400	{object}	errorPayload
//	@Failure		404	{object}	errorPayload
//	@Router			/articulos/{id} [get]
func GetArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := articleID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, codeInvalidID, msgInvalidID)
		}

		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, msgArticleNotFound)
		}
		return c.JSON(articleResponse{Status: statusSuccess, Article: a})
	}
}

// GetImage godoc
//
//	@Summary		Download an article image
//	@Tags			Articulos
//	@Produce		octet-stream
//	@Param			imagen	path		string	true	"Image file name"
//	@Success		200		{file}		binary
//	@Failure		404		{object}	errorPayload
//	@Router			/articulos/imagen/{imagen} [get]
func GetImage(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Fiber leaves route params percent-encoded; stored names may contain spaces or accents.
		name, err := url.PathUnescape(c.Params("imagen"))
		if err != nil {
			return writeError(c, fiber.StatusNotFound, codeNotFound, msgImageNotFound)
		}

		rc, info, err := svc.Image(c.UserContext(), name)
		if err != nil {
			return writeServiceError(c, err, msgImageNotFound)
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		} else {
			c.Type(validator.Extension(name))
		}
		size := int(info.Size)
		if info.Size <= 0 {
			size = -1
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, size)
	}
}

// UpdateArticle godoc
//
//	@Summary		Update an article
//	@Description	Replaces titulo and contenido; an optional file replaces the image and the old one is removed afterwards
//	@Tags			Articulos
//	@Accept			multipart/form-data,json
//	@Produce		json
//	@Param			id			path		string	true	"Article ID (UUID)"
//	@Param			titulo		formData	string	true	"Title"
//	@Param			contenido	formData	string	true	"Body"
//	@Param			file		formData	file	false	"New image (png, jpg, jpeg, gif)"
//	@Success		200			{object}	articleResponse
//	@Failure		400			{object}	errorPayload
//	@Failure		404			{object}	errorPayload
//	@Failure		500			{object}	errorPayload	"Update committed but the old image could not be removed"
//	@Router			/articulos/{id} [put]
func UpdateArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := articleID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, codeInvalidID, msgInvalidID)
		}

		var fields model.ArticleFields
		if err := c.BodyParser(&fields); err != nil {
			return writeError(c, fiber.StatusBadRequest, codeInvalidInput, msgInvalidInput)
		}

		img, closeFile, err := formImage(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, codeInvalidInput, msgInvalidInput)
		}
		defer closeFile()

		res, err := svc.Update(c.UserContext(), id, fields, img)
		if err != nil {
			return writeServiceError(c, err, msgArticleNotFound)
		}
		if res.Err() != nil {
			return writePartial(c, fiber.StatusInternalServerError, codeStorage, msgCleanupFailed, res.Article)
		}
		return c.JSON(articleResponse{Status: statusSuccess, Article: res.Article})
	}
}

// ReplaceArticleImage godoc
//
//	@Summary		Replace the image of an article
//	@Tags			Articulos
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Article ID (UUID)"
//	@Param			file	formData	file	true	"Image (png, jpg, jpeg, gif)"
//	@Success		200		{object}	articleResponse
//	@Failure		400		{object}	errorPayload
//	@Failure		404		{object}	errorPayload
//	@Failure		500		{object}	errorPayload	"Image replaced but the old one could not be removed"
//	@Router			/articulos/imagen/{id} [put]
func ReplaceArticleImage(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := articleID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, codeInvalidID, msgInvalidID)
		}

		img, closeFile, err := formImage(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, codeInvalidInput, msgInvalidInput)
		}
		defer closeFile()

		res, err := svc.ReplaceImage(c.UserContext(), id, img)
		if err != nil {
			return writeServiceError(c, err, msgArticleNotFound)
		}
		if res.Err() != nil {
			return writePartial(c, fiber.StatusInternalServerError, codeStorage, msgCleanupFailed, res.Article)
		}
		return c.JSON(articleResponse{Status: statusSuccess, Article: res.Article})
	}
}

// DeleteArticle godoc
//
//	@Summary		Delete an article
//	@Description	Removes the article and then its image unless it is the default one
//	@Tags			Articulos
//	@Produce		json
//	@Param			id	path		string	true	"Article ID (UUID)"
//	@Success		200	{object}	deleteResponse
//	@Failure		400	{object}	errorPayload
//	@Failure		404	{object}	errorPayload
//	@Failure		500	{object}	errorPayload	"Article deleted but its image could not be removed"
//	@Router			/articulos/{id} [delete]
func DeleteArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := articleID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, codeInvalidID, msgInvalidID)
		}

		res, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, msgArticleNotFound)
		}
		if res.Err() != nil {
			return writePartial(c, fiber.StatusInternalServerError, codeStorage, msgDeleteCleanup, res.Article.Title)
		}
		return c.JSON(deleteResponse{Status: statusSuccess, Message: msgDeleted, Article: res.Article.Title})
	}
}

func articleID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// formImage opens the uploaded "file" part. A request without one yields a nil upload.
// The returned func closes the opened part and is always safe to call.
func formImage(c *fiber.Ctx) (*service.ImageUpload, func(), error) {
	fh, err := c.FormFile(fileField)
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return newImageUpload(fh, f), func() { f.Close() }, nil
}

func newImageUpload(fh *multipart.FileHeader, f multipart.File) *service.ImageUpload {
	ct := fh.Header.Get(fiber.HeaderContentType)
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &service.ImageUpload{
		Reader:      f,
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: ct,
	}
}
