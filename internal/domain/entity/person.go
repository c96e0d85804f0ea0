package entity

import "time"

// Person representa a una persona a la que se le registran movimientos en el libro.
// Name es único sin distinguir mayúsculas.
type Person struct {
	ID        int64
	Name      string
	Note      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
