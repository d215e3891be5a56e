package postgres

import (
	"fmt"
	"strings"

	"blogapi/internal/repository"
)

// likeEscaper escapes the ILIKE wildcards so user input is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE substring pattern.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// BuildWhereClause builds the WHERE clause and arguments for FindAll.
// Placeholders are numbered from 1; an empty clause means "match everything".
func BuildWhereClause(f repository.ArticleFilter) (clause string, args []any) {
	var conditions []string

	next := func() int { return len(args) + 1 }

	if f.TitleContains != "" {
		conditions = append(conditions, fmt.Sprintf("titulo ILIKE $%d", next()))
		args = append(args, containsPattern(f.TitleContains))
	}
	if f.BodyContains != "" {
		conditions = append(conditions, fmt.Sprintf("contenido ILIKE $%d", next()))
		args = append(args, containsPattern(f.BodyContains))
	}
	if f.Image != "" {
		conditions = append(conditions, fmt.Sprintf("imagen = $%d", next()))
		args = append(args, f.Image)
	}
	if f.CreatedAt != nil {
		conditions = append(conditions, fmt.Sprintf("fecha = $%d", next()))
		args = append(args, *f.CreatedAt)
	}
	if f.CreatedOn != nil {
		start, end := f.DayBounds()
		conditions = append(conditions, fmt.Sprintf("fecha >= $%d", next()))
		args = append(args, start)
		conditions = append(conditions, fmt.Sprintf("fecha < $%d", next()))
		args = append(args, end)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
