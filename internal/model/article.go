package model

import "time"

// DefaultImage is assigned to articles created without an image. It is never deleted.
const DefaultImage = "default.png"

// Article is a blog post stored in the articulos collection.
// JSON names follow the public document shape {id, titulo, contenido, fecha, imagen}.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"titulo"`
	Body      string    `json:"contenido"`
	CreatedAt time.Time `json:"fecha"`
	Image     string    `json:"imagen"`
}

// ArticleFields is the client-editable part of an article.
type ArticleFields struct {
	Title string `json:"titulo" form:"titulo"`
	Body  string `json:"contenido" form:"contenido"`
}
