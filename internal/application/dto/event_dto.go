package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// EventRequest entrada para crear/actualizar un evento.
// Conteos e importes ausentes valen cero; lunchAndTastingTotal y grandTotal se recalculan siempre.
type EventRequest struct {
	VisitDate *Date  `json:"visitDate"`
	VisitTime string `json:"visitTime"`

	AdultLunchGuests   int `json:"adultLunchGuests"`
	AdultTastingGuests int `json:"adultTastingGuests"`
	ChildrenGuests     int `json:"childrenGuests"`
	ExtraGuests        int `json:"extraGuests"`

	HotDishVegetarian string `json:"hotDishVegetarian"`
	HotDishMeat       string `json:"hotDishMeat"`
	Masterclass       bool   `json:"masterclass"`
	MealExtraInfo     string `json:"mealExtraInfo"`

	Company      string `json:"company"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`

	SpecialPriceEnabled bool             `json:"specialPriceEnabled"`
	SpecialLunchPrice   *decimal.Decimal `json:"specialLunchPrice"`
	LunchGroupSize      int              `json:"lunchGroupSize"`
	LunchRate           decimal.Decimal  `json:"lunchRate"`
	LunchTotal          decimal.Decimal  `json:"lunchTotal"`

	SpecialTastingPrice *decimal.Decimal `json:"specialTastingPrice"`
	TastingGroupSize    int              `json:"tastingGroupSize"`
	TastingRate         decimal.Decimal  `json:"tastingRate"`
	TastingTotal        decimal.Decimal  `json:"tastingTotal"`

	LunchAndTastingTotal decimal.Decimal `json:"lunchAndTastingTotal"`

	AddedWinesCount int             `json:"addedWinesCount"`
	AddedWinesValue decimal.Decimal `json:"addedWinesValue"`

	ExtraChargeComment string          `json:"extraChargeComment"`
	ExtraChargeAmount  decimal.Decimal `json:"extraChargeAmount"`

	GrandTotal    decimal.Decimal `json:"grandTotal"`
	InvoiceIssued bool            `json:"invoiceIssued"`
}

// Validate devuelve errores por campo o nil.
func (r *EventRequest) Validate() ValidationErrors {
	v := ValidationErrors{}
	r.ContactName = strings.TrimSpace(r.ContactName)
	r.VisitTime = strings.TrimSpace(r.VisitTime)

	if r.VisitDate == nil {
		v.add("visitDate", "la fecha de visita es obligatoria")
	}
	switch {
	case r.VisitTime == "":
		v.add("visitTime", "la hora de visita es obligatoria")
	case !clockPattern.MatchString(r.VisitTime):
		v.add("visitTime", "la hora debe tener el formato HH:MM o HH:MM:SS")
	}
	if r.ContactName == "" {
		v.add("contactName", "el nombre de contacto es obligatorio")
	}
	v.maxLen("contactPhone", r.ContactPhone, 50)

	v.count("adultLunchGuests", r.AdultLunchGuests)
	v.count("adultTastingGuests", r.AdultTastingGuests)
	v.count("childrenGuests", r.ChildrenGuests)
	v.count("extraGuests", r.ExtraGuests)
	v.count("lunchGroupSize", r.LunchGroupSize)
	v.count("tastingGroupSize", r.TastingGroupSize)
	v.count("addedWinesCount", r.AddedWinesCount)

	v.amount("specialLunchPrice", r.SpecialLunchPrice)
	v.amount("specialTastingPrice", r.SpecialTastingPrice)
	v.amount("lunchRate", &r.LunchRate)
	v.amount("lunchTotal", &r.LunchTotal)
	v.amount("tastingRate", &r.TastingRate)
	v.amount("tastingTotal", &r.TastingTotal)
	v.amount("addedWinesValue", &r.AddedWinesValue)
	v.amount("extraChargeAmount", &r.ExtraChargeAmount)

	// Los totales derivados se guardan en columnas del mismo tipo que sus componentes.
	lunchAndTasting := r.LunchTotal.Round(2).Add(r.TastingTotal.Round(2))
	grand := lunchAndTasting.Add(r.AddedWinesValue.Round(2)).Add(r.ExtraChargeAmount.Round(2))
	v.maxDecimal("lunchAndTastingTotal", &lunchAndTasting, MaxMoney)
	v.maxDecimal("grandTotal", &grand, MaxMoney)
	return v.OrNil()
}

// EventResponse salida de un evento.
type EventResponse struct {
	ID               int64     `json:"id"`
	CreatedTimestamp time.Time `json:"createdTimestamp"`
	VisitDate        Date      `json:"visitDate"`
	VisitTime        string    `json:"visitTime"`

	AdultLunchGuests   int `json:"adultLunchGuests"`
	AdultTastingGuests int `json:"adultTastingGuests"`
	ChildrenGuests     int `json:"childrenGuests"`
	ExtraGuests        int `json:"extraGuests"`

	HotDishVegetarian string `json:"hotDishVegetarian"`
	HotDishMeat       string `json:"hotDishMeat"`
	Masterclass       bool   `json:"masterclass"`
	MealExtraInfo     string `json:"mealExtraInfo"`

	Company      string `json:"company"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`

	SpecialPriceEnabled bool   `json:"specialPriceEnabled"`
	SpecialLunchPrice   *Money `json:"specialLunchPrice"`
	LunchGroupSize      int    `json:"lunchGroupSize"`
	LunchRate           Money  `json:"lunchRate"`
	LunchTotal          Money  `json:"lunchTotal"`

	SpecialTastingPrice *Money `json:"specialTastingPrice"`
	TastingGroupSize    int    `json:"tastingGroupSize"`
	TastingRate         Money  `json:"tastingRate"`
	TastingTotal        Money  `json:"tastingTotal"`

	LunchAndTastingTotal Money `json:"lunchAndTastingTotal"`

	AddedWinesCount int   `json:"addedWinesCount"`
	AddedWinesValue Money `json:"addedWinesValue"`

	ExtraChargeComment string `json:"extraChargeComment"`
	ExtraChargeAmount  Money  `json:"extraChargeAmount"`

	GrandTotal    Money `json:"grandTotal"`
	InvoiceIssued bool  `json:"invoiceIssued"`
}

// EventTotals totales de eventos en la frontera JSON.
type EventTotals struct {
	LunchTotal        Money `json:"lunchTotal"`
	TastingTotal      Money `json:"tastingTotal"`
	AddedWinesValue   Money `json:"addedWinesValue"`
	ExtraChargeAmount Money `json:"extraChargeAmount"`
	GrandTotal        Money `json:"grandTotal"`
}

// EventPage listado de eventos con totales de página y del conjunto filtrado.
type EventPage struct {
	PageResponse[EventResponse]
	PageTotal  EventTotals `json:"pageTotal"`
	GrandTotal EventTotals `json:"grandTotal"`
}
