package dto

import (
	"regexp"
	"strings"
	"time"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryRequest entrada para crear/actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Active      *bool  `json:"active"`
}

// Validate devuelve errores por campo o nil.
func (r *CategoryRequest) Validate() ValidationErrors {
	v := ValidationErrors{}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		v.add("name", "el nombre es obligatorio")
	}
	v.maxLen("name", r.Name, 255)
	if r.Color != "" && !colorPattern.MatchString(r.Color) {
		v.add("color", "el color debe tener el formato #RRGGBB")
	}
	return v.OrNil()
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
