package dto

import (
	"strings"
	"time"
)

// PersonRequest entrada para crear/actualizar una persona.
type PersonRequest struct {
	Name   string `json:"name"`
	Note   string `json:"note"`
	Active *bool  `json:"active"`
}

// Validate devuelve errores por campo o nil.
func (r *PersonRequest) Validate() ValidationErrors {
	v := ValidationErrors{}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		v.add("name", "el nombre es obligatorio")
	}
	v.maxLen("name", r.Name, 255)
	return v.OrNil()
}

// PersonResponse salida de una persona.
type PersonResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Note      string    `json:"note"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
