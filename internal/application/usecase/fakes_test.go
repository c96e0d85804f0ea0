package usecase_test

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/ledger"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Devuelven copias para que
// los casos de uso no muten el estado sin pasar por Update.

type fakeTx struct{ calls int }

func (f *fakeTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type auditCall struct {
	Action   string
	Table    string
	RecordID int64
	Old, New any
}

type recordingAuditor struct{ calls []auditCall }

func (r *recordingAuditor) LogCreate(_ context.Context, table string, id int64, newState any) {
	r.calls = append(r.calls, auditCall{Action: entity.AuditInsert, Table: table, RecordID: id, New: newState})
}

func (r *recordingAuditor) LogUpdate(_ context.Context, table string, id int64, oldState, newState any) {
	r.calls = append(r.calls, auditCall{Action: entity.AuditUpdate, Table: table, RecordID: id, Old: oldState, New: newState})
}

func (r *recordingAuditor) LogDelete(_ context.Context, table string, id int64, oldState any) {
	r.calls = append(r.calls, auditCall{Action: entity.AuditDelete, Table: table, RecordID: id, Old: oldState})
}

func paginate[T any](rows []T, page repository.PageQuery) []T {
	page = page.Normalize()
	start := page.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := start + page.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ----- Person -----

type fakePersons struct {
	mu         sync.Mutex
	rows       map[int64]entity.Person
	next       int64
	referenced map[int64]bool
}

var _ repository.PersonRepository = (*fakePersons)(nil)

func newFakePersons(names ...string) *fakePersons {
	f := &fakePersons{rows: map[int64]entity.Person{}, referenced: map[int64]bool{}}
	for _, n := range names {
		_ = f.Create(context.Background(), &entity.Person{Name: n, Active: true})
	}
	return f
}

func (f *fakePersons) Create(_ context.Context, p *entity.Person) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	p.ID = f.next
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePersons) GetByID(_ context.Context, id int64) (*entity.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePersons) FindByName(_ context.Context, name string) (*entity.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if strings.EqualFold(p.Name, name) {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePersons) Update(_ context.Context, p *entity.Person) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePersons) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakePersons) List(_ context.Context, nf repository.NameFilter, page repository.PageQuery) ([]*entity.Person, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Person
	for _, p := range f.rows {
		if nf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(nf.Name)) {
			continue
		}
		if nf.Active != nil && p.Active != *nf.Active {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page), int64(len(out)), nil
}

func (f *fakePersons) IsReferenced(_ context.Context, id int64) (bool, error) {
	return f.referenced[id], nil
}

// ----- Category -----

type fakeCategories struct {
	mu         sync.Mutex
	rows       map[int64]entity.Category
	next       int64
	referenced map[int64]bool
}

var _ repository.CategoryRepository = (*fakeCategories)(nil)

func newFakeCategories(names ...string) *fakeCategories {
	f := &fakeCategories{rows: map[int64]entity.Category{}, referenced: map[int64]bool{}}
	for _, n := range names {
		_ = f.Create(context.Background(), &entity.Category{Name: n, Active: true})
	}
	return f
}

func (f *fakeCategories) Create(_ context.Context, c *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	c.ID = f.next
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCategories) FindByName(_ context.Context, name string) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if strings.EqualFold(c.Name, name) {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) Update(_ context.Context, c *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeCategories) List(_ context.Context, _ repository.NameFilter, page repository.PageQuery) ([]*entity.Category, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Category
	for _, c := range f.rows {
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page), int64(len(out)), nil
}

func (f *fakeCategories) IsReferenced(_ context.Context, id int64) (bool, error) {
	return f.referenced[id], nil
}

// ----- Entry -----

// fakeEntries resuelve nombres contra los fakes de personas y categorías.
// SumTotals y Count devuelven valores prefijados y registran el filtro recibido.
type fakeEntries struct {
	mu         sync.Mutex
	rows       map[int64]entity.Entry
	next       int64
	persons    *fakePersons
	categories *fakeCategories

	sum            *ledger.EntryTotals // fijo; nil suma las filas que cumplen el filtro
	count          int64
	sumFilters     []repository.EntryFilter
	listAmountsHit int
}

var _ repository.EntryRepository = (*fakeEntries)(nil)

func newFakeEntries(p *fakePersons, c *fakeCategories) *fakeEntries {
	return &fakeEntries{rows: map[int64]entity.Entry{}, persons: p, categories: c}
}

func (f *fakeEntries) Create(_ context.Context, e *entity.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	e.ID = f.next
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEntries) GetByID(ctx context.Context, id int64) (*entity.Entry, error) {
	f.mu.Lock()
	e, ok := f.rows[id]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}
	if p, _ := f.persons.GetByID(ctx, e.PersonID); p != nil {
		e.PersonName = p.Name
	}
	if c, _ := f.categories.GetByID(ctx, e.CategoryID); c != nil {
		e.CategoryName = c.Name
	}
	return &e, nil
}

func (f *fakeEntries) Update(_ context.Context, e *entity.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEntries) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeEntries) all() []*entity.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Entry, 0, len(f.rows))
	for _, e := range f.rows {
		cp := e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeEntries) matching(filter repository.EntryFilter) []*entity.Entry {
	out := []*entity.Entry{}
	for _, e := range f.all() {
		switch {
		case filter.PersonID != nil && e.PersonID != *filter.PersonID,
			filter.CategoryID != nil && e.CategoryID != *filter.CategoryID,
			filter.DateFrom != nil && e.Date.Before(*filter.DateFrom),
			filter.DateTo != nil && e.Date.After(*filter.DateTo),
			filter.Description != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(filter.Description)):
			continue
		}
		out = append(out, e)
	}
	return out
}

func (f *fakeEntries) List(_ context.Context, filter repository.EntryFilter, page repository.PageQuery) ([]*entity.Entry, int64, error) {
	rows := f.matching(filter)
	return paginate(rows, page), int64(len(rows)), nil
}

func (f *fakeEntries) ListAmounts(_ context.Context) ([]*entity.Entry, error) {
	f.listAmountsHit++
	return f.all(), nil
}

func (f *fakeEntries) SumTotals(_ context.Context, filter repository.EntryFilter) (ledger.EntryTotals, error) {
	f.sumFilters = append(f.sumFilters, filter)
	if f.sum != nil {
		return *f.sum, nil
	}
	return ledger.SumEntries(f.matching(filter)), nil
}

func (f *fakeEntries) Count(_ context.Context, _ repository.EntryFilter) (int64, error) {
	return f.count, nil
}

// ----- Event -----

type fakeEvents struct {
	mu   sync.Mutex
	rows map[int64]entity.Event
	next int64
	sum  *ledger.EventTotals // fijo; nil suma las filas que cumplen el filtro
}

var _ repository.EventRepository = (*fakeEvents)(nil)

func newFakeEvents() *fakeEvents { return &fakeEvents{rows: map[int64]entity.Event{}} }

func (f *fakeEvents) Create(_ context.Context, e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	e.ID = f.next
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEvents) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeEvents) Update(_ context.Context, e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEvents) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeEvents) all() []*entity.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Event, 0, len(f.rows))
	for _, e := range f.rows {
		cp := e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeEvents) matching(filter repository.EventFilter) []*entity.Event {
	out := []*entity.Event{}
	for _, e := range f.all() {
		switch {
		case filter.Masterclass != nil && e.Masterclass != *filter.Masterclass,
			filter.InvoiceIssued != nil && e.InvoiceIssued != *filter.InvoiceIssued,
			filter.SpecialPrice != nil && e.SpecialPriceEnabled != *filter.SpecialPrice,
			filter.DateFrom != nil && e.VisitDate.Before(*filter.DateFrom),
			filter.DateTo != nil && e.VisitDate.After(*filter.DateTo),
			filter.Company != "" && !strings.Contains(strings.ToLower(e.Company), strings.ToLower(filter.Company)),
			filter.ContactName != "" && !strings.Contains(strings.ToLower(e.ContactName), strings.ToLower(filter.ContactName)):
			continue
		}
		out = append(out, e)
	}
	return out
}

func (f *fakeEvents) List(_ context.Context, filter repository.EventFilter, page repository.PageQuery) ([]*entity.Event, int64, error) {
	rows := f.matching(filter)
	return paginate(rows, page), int64(len(rows)), nil
}

func (f *fakeEvents) ListAmounts(_ context.Context) ([]*entity.Event, error) { return f.all(), nil }

func (f *fakeEvents) SumTotals(_ context.Context, filter repository.EventFilter) (ledger.EventTotals, error) {
	if f.sum != nil {
		return *f.sum, nil
	}
	return ledger.SumEvents(f.matching(filter)), nil
}

// ----- User -----

type fakeUsers struct {
	mu   sync.Mutex
	rows map[int64]entity.User
	next int64
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers(users ...entity.User) *fakeUsers {
	f := &fakeUsers{rows: map[int64]entity.User{}}
	for _, u := range users {
		u := u
		_ = f.Create(context.Background(), &u)
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	u.ID = f.next
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeUsers) List(_ context.Context, page repository.PageQuery) ([]*entity.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.User, 0, len(f.rows))
	for _, u := range f.rows {
		cp := u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return paginate(out, page), int64(len(out)), nil
}

func (f *fakeUsers) CountActiveByRole(_ context.Context, role string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.rows {
		if u.Active && u.Role == role {
			n++
		}
	}
	return n, nil
}

// ----- Audit -----

type fakeAuditRepo struct {
	rows []*entity.AuditLog
	err  error
}

var _ repository.AuditLogRepository = (*fakeAuditRepo)(nil)

func (f *fakeAuditRepo) Create(_ context.Context, a *entity.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	a.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, af repository.AuditFilter, page repository.PageQuery) ([]*entity.AuditLog, int64, error) {
	var out []*entity.AuditLog
	for i := len(f.rows) - 1; i >= 0; i-- {
		a := f.rows[i]
		if af.TableName != "" && a.TableName != af.TableName {
			continue
		}
		if af.RecordID != nil && a.RecordID != *af.RecordID {
			continue
		}
		out = append(out, a)
	}
	return paginate(out, page), int64(len(out)), nil
}

func mustField(t *testing.T, raw json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	v, ok := m[key]
	require.True(t, ok, "falta el campo %s", key)
	return v
}
