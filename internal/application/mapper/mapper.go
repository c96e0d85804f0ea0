// Package mapper convierte entidades de dominio en DTOs y viceversa.
// Funciones puras; el hash de contraseña nunca sale de aquí.
package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/winery-api/internal/application/dto"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
)

// ----- Person -----

func PersonToResponse(p *entity.Person) dto.PersonResponse {
	return dto.PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		Note:      p.Note,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPerson construye una persona desde la petición (active por defecto true).
func NewPerson(req dto.PersonRequest) *entity.Person {
	p := &entity.Person{Active: true}
	ApplyPerson(req, p)
	return p
}

// ApplyPerson copia los campos editables; active solo si viene en la petición.
func ApplyPerson(req dto.PersonRequest, p *entity.Person) {
	p.Name = req.Name
	p.Note = req.Note
	if req.Active != nil {
		p.Active = *req.Active
	}
}

// ----- Category -----

func CategoryToResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCategory(req dto.CategoryRequest) *entity.Category {
	c := &entity.Category{Active: true}
	ApplyCategory(req, c)
	return c
}

func ApplyCategory(req dto.CategoryRequest, c *entity.Category) {
	c.Name = req.Name
	c.Description = req.Description
	c.Color = req.Color
	if req.Active != nil {
		c.Active = *req.Active
	}
}

// ----- Entry -----

func EntryToResponse(e *entity.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:           e.ID,
		Date:         dto.NewDate(e.Date),
		Description:  e.Description,
		PersonID:     e.PersonID,
		PersonName:   e.PersonName,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		WorkHours:    dto.MoneyPtr(e.WorkHours),
		AmountPaid:   dto.MoneyPtr(e.AmountPaid),
		AmountDue:    dto.MoneyPtr(e.AmountDue),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func NewEntry(req dto.EntryRequest) *entity.Entry {
	e := &entity.Entry{}
	ApplyEntry(req, e)
	return e
}

func ApplyEntry(req dto.EntryRequest, e *entity.Entry) {
	if req.Date != nil {
		e.Date = req.Date.Time()
	}
	e.Description = req.Description
	e.PersonID = req.PersonID
	e.CategoryID = req.CategoryID
	e.WorkHours = roundPtr(req.WorkHours)
	e.AmountPaid = roundPtr(req.AmountPaid)
	e.AmountDue = roundPtr(req.AmountDue)
}

func EntryTotalsToDTO(t ledger.EntryTotals) dto.EntryTotals {
	return dto.EntryTotals{
		AmountPaid: dto.NewMoney(t.AmountPaid),
		AmountDue:  dto.NewMoney(t.AmountDue),
		Total:      dto.NewMoney(t.Total),
		WorkHours:  dto.NewMoney(t.WorkHours),
	}
}

// ----- Event -----

func EventToResponse(e *entity.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:                   e.ID,
		CreatedTimestamp:     e.CreatedTimestamp,
		VisitDate:            dto.NewDate(e.VisitDate),
		VisitTime:            e.VisitTime,
		AdultLunchGuests:     e.AdultLunchGuests,
		AdultTastingGuests:   e.AdultTastingGuests,
		ChildrenGuests:       e.ChildrenGuests,
		ExtraGuests:          e.ExtraGuests,
		HotDishVegetarian:    e.HotDishVegetarian,
		HotDishMeat:          e.HotDishMeat,
		Masterclass:          e.Masterclass,
		MealExtraInfo:        e.MealExtraInfo,
		Company:              e.Company,
		ContactName:          e.ContactName,
		ContactPhone:         e.ContactPhone,
		SpecialPriceEnabled:  e.SpecialPriceEnabled,
		SpecialLunchPrice:    dto.MoneyPtr(e.SpecialLunchPrice),
		LunchGroupSize:       e.LunchGroupSize,
		LunchRate:            dto.NewMoney(e.LunchRate),
		LunchTotal:           dto.NewMoney(e.LunchTotal),
		SpecialTastingPrice:  dto.MoneyPtr(e.SpecialTastingPrice),
		TastingGroupSize:     e.TastingGroupSize,
		TastingRate:          dto.NewMoney(e.TastingRate),
		TastingTotal:         dto.NewMoney(e.TastingTotal),
		LunchAndTastingTotal: dto.NewMoney(e.LunchAndTastingTotal),
		AddedWinesCount:      e.AddedWinesCount,
		AddedWinesValue:      dto.NewMoney(e.AddedWinesValue),
		ExtraChargeComment:   e.ExtraChargeComment,
		ExtraChargeAmount:    dto.NewMoney(e.ExtraChargeAmount),
		GrandTotal:           dto.NewMoney(e.GrandTotal),
		InvoiceIssued:        e.InvoiceIssued,
	}
}

func NewEvent(req dto.EventRequest) *entity.Event {
	e := &entity.Event{}
	ApplyEvent(req, e)
	return e
}

// ApplyEvent copia los campos del cliente. Los totales derivados se copian tal cual;
// el caso de uso los recalcula antes de persistir.
func ApplyEvent(req dto.EventRequest, e *entity.Event) {
	if req.VisitDate != nil {
		e.VisitDate = req.VisitDate.Time()
	}
	e.VisitTime = normalizeClock(req.VisitTime)
	e.AdultLunchGuests = req.AdultLunchGuests
	e.AdultTastingGuests = req.AdultTastingGuests
	e.ChildrenGuests = req.ChildrenGuests
	e.ExtraGuests = req.ExtraGuests
	e.HotDishVegetarian = req.HotDishVegetarian
	e.HotDishMeat = req.HotDishMeat
	e.Masterclass = req.Masterclass
	e.MealExtraInfo = req.MealExtraInfo
	e.Company = req.Company
	e.ContactName = req.ContactName
	e.ContactPhone = req.ContactPhone
	e.SpecialPriceEnabled = req.SpecialPriceEnabled
	e.SpecialLunchPrice = roundPtr(req.SpecialLunchPrice)
	e.LunchGroupSize = req.LunchGroupSize
	e.LunchRate = ledger.Round(req.LunchRate)
	e.LunchTotal = ledger.Round(req.LunchTotal)
	e.SpecialTastingPrice = roundPtr(req.SpecialTastingPrice)
	e.TastingGroupSize = req.TastingGroupSize
	e.TastingRate = ledger.Round(req.TastingRate)
	e.TastingTotal = ledger.Round(req.TastingTotal)
	e.LunchAndTastingTotal = ledger.Round(req.LunchAndTastingTotal)
	e.AddedWinesCount = req.AddedWinesCount
	e.AddedWinesValue = ledger.Round(req.AddedWinesValue)
	e.ExtraChargeComment = req.ExtraChargeComment
	e.ExtraChargeAmount = ledger.Round(req.ExtraChargeAmount)
	e.GrandTotal = ledger.Round(req.GrandTotal)
	e.InvoiceIssued = req.InvoiceIssued
}

func EventTotalsToDTO(t ledger.EventTotals) dto.EventTotals {
	return dto.EventTotals{
		LunchTotal:        dto.NewMoney(t.LunchTotal),
		TastingTotal:      dto.NewMoney(t.TastingTotal),
		AddedWinesValue:   dto.NewMoney(t.AddedWinesValue),
		ExtraChargeAmount: dto.NewMoney(t.ExtraChargeAmount),
		GrandTotal:        dto.NewMoney(t.GrandTotal),
	}
}

// ----- User -----

// UserToResponse nunca incluye el hash de contraseña.
func UserToResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ----- Audit -----

func AuditToResponse(a *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:        a.ID,
		TableName: a.TableName,
		RecordID:  a.RecordID,
		Action:    a.Action,
		OldValues: a.OldValues,
		NewValues: a.NewValues,
		ChangedBy: a.ChangedBy,
		ChangedAt: a.ChangedAt,
		IPAddress: a.IPAddress,
		UserAgent: a.UserAgent,
	}
}

// ----- helpers -----

func roundPtr(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	r := ledger.Round(*v)
	return &r
}

// normalizeClock completa "HH:MM" a "HH:MM:SS".
func normalizeClock(s string) string {
	if len(s) == len("15:04") {
		return s + ":00"
	}
	return s
}

// MapSlice aplica f a cada elemento.
func MapSlice[E, D any](items []E, f func(E) D) []D {
	out := make([]D, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
