package repository

// Límites de paginación.
const (
	DefaultPageSize = 15
	MaxPageSize     = 100
)

// PageQuery paginación 0-based con un único criterio de orden.
// SortField es el nombre público del campo (ej. "visitDate"); cada repositorio
// lo traduce a columna mediante su lista blanca y usa su orden por defecto si no lo reconoce.
type PageQuery struct {
	Page      int
	Size      int
	SortField string
	SortDesc  bool
}

// Normalize aplica los valores por defecto y límites.
func (p PageQuery) Normalize() PageQuery {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset devuelve el desplazamiento para LIMIT/OFFSET.
func (p PageQuery) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}
