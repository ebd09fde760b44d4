// Package memstore implementa los puertos de repository en memoria para tests de
// casos de uso y handlers. Replica las reglas de unicidad y de pertenencia por
// empresa de los repositorios PostgreSQL, y los Run* descartan los cambios si fn falla.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	companies     map[string]*entity.Company
	users         map[string]*entity.User
	factories     map[string]*entity.Factory
	suppliers     map[string]*entity.Supplier
	devices       map[string]*entity.IoTDevice
	rawMaterials  map[string]*entity.RawMaterialBatch
	runs          map[string]*entity.ProductionRun
	runInputs     map[string]*entity.ProductionRunInput
	finishedGoods map[string]*entity.FinishedGoodBatch
	auditLogs     map[string]*entity.AuditLog
	reports       map[string]*entity.ComplianceReport

	Energy []*entity.EnergyMetric
	Water  []*entity.WaterMetric
	Waste  []*entity.WasteMetric

	// Errores inyectables para simular fallos de la base.
	MetricErr error
	AuditErr  error
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		companies:     map[string]*entity.Company{},
		users:         map[string]*entity.User{},
		factories:     map[string]*entity.Factory{},
		suppliers:     map[string]*entity.Supplier{},
		devices:       map[string]*entity.IoTDevice{},
		rawMaterials:  map[string]*entity.RawMaterialBatch{},
		runs:          map[string]*entity.ProductionRun{},
		runInputs:     map[string]*entity.ProductionRunInput{},
		finishedGoods: map[string]*entity.FinishedGoodBatch{},
		auditLogs:     map[string]*entity.AuditLog{},
		reports:       map[string]*entity.ComplianceReport{},
	}
}

// Repositorios.
func (s *Store) Companies() repository.CompanyRepository          { return companyRepo{s} }
func (s *Store) Users() repository.UserRepository                 { return userRepo{s} }
func (s *Store) Factories() repository.FactoryRepository          { return factoryRepo{s} }
func (s *Store) Suppliers() repository.SupplierRepository         { return supplierRepo{s} }
func (s *Store) Devices() repository.DeviceRepository             { return deviceRepo{s} }
func (s *Store) RawMaterials() repository.RawMaterialRepository   { return rawMaterialRepo{s} }
func (s *Store) Runs() repository.ProductionRunRepository         { return runRepo{s} }
func (s *Store) FinishedGoods() repository.FinishedGoodRepository { return finishedGoodRepo{s} }
func (s *Store) Trace() repository.TraceRepository                { return traceRepo{s} }
func (s *Store) Metrics() repository.MetricRepository             { return metricRepo{s} }
func (s *Store) AuditLogs() repository.AuditLogRepository         { return auditRepo{s} }
func (s *Store) Reports() repository.ReportRepository             { return reportRepo{s} }

// RunRegistration ejecuta fn y descarta los cambios si falla.
func (s *Store) RunRegistration(ctx context.Context, fn func(companies repository.CompanyRepository, users repository.UserRepository) error) error {
	return s.atomically(func() error { return fn(s.Companies(), s.Users()) })
}

// RunProduction ejecuta fn y descarta los cambios si falla.
func (s *Store) RunProduction(ctx context.Context, fn func(runs repository.ProductionRunRepository) error) error {
	return s.atomically(func() error { return fn(s.Runs()) })
}

// RunIngest ejecuta fn y descarta los cambios si falla.
func (s *Store) RunIngest(ctx context.Context, fn func(metrics repository.MetricRepository, devices repository.DeviceRepository) error) error {
	return s.atomically(func() error { return fn(s.Metrics(), s.Devices()) })
}

type snapshot struct {
	companies     map[string]*entity.Company
	users         map[string]*entity.User
	runs          map[string]*entity.ProductionRun
	runInputs     map[string]*entity.ProductionRunInput
	devices       map[string]*entity.IoTDevice
	energy, water int
	waste         int
}

func (s *Store) atomically(fn func() error) error {
	s.mu.Lock()
	snap := snapshot{
		companies: cloneMap(s.companies),
		users:     cloneMap(s.users),
		runs:      cloneMap(s.runs),
		runInputs: cloneMap(s.runInputs),
		devices:   cloneMap(s.devices),
		energy:    len(s.Energy),
		water:     len(s.Water),
		waste:     len(s.Waste),
	}
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.companies, s.users = snap.companies, snap.users
		s.runs, s.runInputs, s.devices = snap.runs, snap.runInputs, snap.devices
		s.Energy, s.Water, s.Waste = s.Energy[:snap.energy], s.Water[:snap.water], s.Waste[:snap.waste]
		s.mu.Unlock()
		return err
	}
	return nil
}

// cloneMap copia el mapa y también cada entidad, para que un rollback revierta updates.
func cloneMap[T any](m map[string]*T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func page[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return []*T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func newestFirst[T any](items []*T, created func(*T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return created(items[i]).After(created(items[j])) })
}

// ---- pertenencia ----

func (s *Store) factoryOwned(factoryID, companyID string) bool {
	f, ok := s.factories[factoryID]
	return ok && f.CompanyID == companyID
}

func (s *Store) supplierOwned(supplierID, companyID string) bool {
	sp, ok := s.suppliers[supplierID]
	return ok && sp.CompanyID == companyID
}

func (s *Store) runOwned(runID, companyID string) bool {
	r, ok := s.runs[runID]
	return ok && s.factoryOwned(r.FactoryID, companyID)
}

// ---- companies ----

type companyRepo struct{ s *Store }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.companies {
		if other.Email == c.Email {
			return domain.ErrConflict
		}
	}
	r.s.companies[c.ID] = clone(c)
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.companies[id]), nil
}

func (r companyRepo) GetByEmail(_ context.Context, email string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.Email == email {
			return clone(c), nil
		}
	}
	return nil, nil
}

// ---- users ----

type userRepo struct{ s *Store }

func (r userRepo) emailTaken(email, exceptID string) bool {
	for _, u := range r.s.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, "") {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = clone(u)
	return nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r userRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.CompanyID != companyID {
		return nil, nil
	}
	return clone(u), nil
}

func (r userRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if u.CompanyID == companyID {
			out = append(out, clone(u))
		}
	}
	newestFirst(out, func(u *entity.User) time.Time { return u.CreatedAt })
	return page(out, limit, offset), nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = clone(u)
	return nil
}

func (r userRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (r userRepo) Delete(_ context.Context, id, companyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok && u.CompanyID == companyID {
		delete(r.s.users, id)
	}
	return nil
}

// ---- factories ----

type factoryRepo struct{ s *Store }

func (r factoryRepo) Create(_ context.Context, f *entity.Factory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.factories[f.ID] = clone(f)
	return nil
}

func (r factoryRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Factory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.factoryOwned(id, companyID) {
		return nil, nil
	}
	return clone(r.s.factories[id]), nil
}

func (r factoryRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Factory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Factory
	for _, f := range r.s.factories {
		if f.CompanyID == companyID {
			out = append(out, clone(f))
		}
	}
	newestFirst(out, func(f *entity.Factory) time.Time { return f.CreatedAt })
	return page(out, limit, offset), nil
}

func (r factoryRepo) Update(_ context.Context, f *entity.Factory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.factories[f.ID] = clone(f)
	return nil
}

// Delete replica el ON DELETE CASCADE de dispositivos y corridas.
func (r factoryRepo) Delete(_ context.Context, id, companyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.factoryOwned(id, companyID) {
		return nil
	}
	delete(r.s.factories, id)
	for k, d := range r.s.devices {
		if d.FactoryID == id {
			delete(r.s.devices, k)
		}
	}
	for k, run := range r.s.runs {
		if run.FactoryID == id {
			delete(r.s.runs, k)
		}
	}
	return nil
}

// ---- suppliers ----

type supplierRepo struct{ s *Store }

func (r supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[sp.ID] = clone(sp)
	return nil
}

func (r supplierRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.supplierOwned(id, companyID) {
		return nil, nil
	}
	return clone(r.s.suppliers[id]), nil
}

func (r supplierRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, sp := range r.s.suppliers {
		if sp.CompanyID == companyID {
			out = append(out, clone(sp))
		}
	}
	newestFirst(out, func(sp *entity.Supplier) time.Time { return sp.CreatedAt })
	return page(out, limit, offset), nil
}

func (r supplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[sp.ID] = clone(sp)
	return nil
}

func (r supplierRepo) Delete(_ context.Context, id, companyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.supplierOwned(id, companyID) {
		delete(r.s.suppliers, id)
	}
	return nil
}

// ---- devices ----

type deviceRepo struct{ s *Store }

func (r deviceRepo) externalTaken(deviceID, exceptID string) bool {
	for _, d := range r.s.devices {
		if d.DeviceID == deviceID && d.ID != exceptID {
			return true
		}
	}
	return false
}

func (r deviceRepo) Create(_ context.Context, d *entity.IoTDevice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.externalTaken(d.DeviceID, "") {
		return domain.ErrDuplicate
	}
	r.s.devices[d.ID] = clone(d)
	return nil
}

func (r deviceRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.IoTDevice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.devices[id]
	if !ok || !r.s.factoryOwned(d.FactoryID, companyID) {
		return nil, nil
	}
	return clone(d), nil
}

func (r deviceRepo) GetByExternalIDAndCompany(_ context.Context, deviceID, companyID string) (*entity.IoTDevice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.devices {
		if d.DeviceID == deviceID && r.s.factoryOwned(d.FactoryID, companyID) {
			return clone(d), nil
		}
	}
	return nil, nil
}

func (r deviceRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.IoTDevice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.IoTDevice
	for _, d := range r.s.devices {
		if r.s.factoryOwned(d.FactoryID, companyID) {
			out = append(out, clone(d))
		}
	}
	newestFirst(out, func(d *entity.IoTDevice) time.Time { return d.CreatedAt })
	return page(out, limit, offset), nil
}

func (r deviceRepo) Update(_ context.Context, d *entity.IoTDevice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.externalTaken(d.DeviceID, d.ID) {
		return domain.ErrDuplicate
	}
	r.s.devices[d.ID] = clone(d)
	return nil
}

func (r deviceRepo) UpdateLastPing(_ context.Context, pings map[string]time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, at := range pings {
		if d, ok := r.s.devices[id]; ok {
			if d.LastPing == nil || at.After(*d.LastPing) {
				t := at
				d.LastPing = &t
			}
		}
	}
	return nil
}

func (r deviceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.devices, id)
	return nil
}

// ---- raw materials ----

type rawMaterialRepo struct{ s *Store }

func (r rawMaterialRepo) Create(_ context.Context, b *entity.RawMaterialBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rawMaterials[b.ID] = clone(b)
	return nil
}

func (r rawMaterialRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.RawMaterialBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.rawMaterials[id]
	if !ok || !r.s.supplierOwned(b.SupplierID, companyID) {
		return nil, nil
	}
	return clone(b), nil
}

func (r rawMaterialRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.RawMaterialBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.RawMaterialBatch
	for _, b := range r.s.rawMaterials {
		if r.s.supplierOwned(b.SupplierID, companyID) {
			out = append(out, clone(b))
		}
	}
	newestFirst(out, func(b *entity.RawMaterialBatch) time.Time { return b.CreatedAt })
	return page(out, limit, offset), nil
}

// ---- production runs ----

type runRepo struct{ s *Store }

func (r runRepo) Create(_ context.Context, run *entity.ProductionRun) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.runs[run.ID] = clone(run)
	return nil
}

func (r runRepo) CreateInputs(_ context.Context, inputs []*entity.ProductionRunInput) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, in := range inputs {
		if _, ok := r.s.rawMaterials[in.RawMaterialBatchID]; !ok {
			return domain.ErrNotFound
		}
		r.s.runInputs[in.ID] = clone(in)
	}
	return nil
}

func (r runRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.ProductionRun, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.runOwned(id, companyID) {
		return nil, nil
	}
	return clone(r.s.runs[id]), nil
}

func (r runRepo) ListInputs(_ context.Context, runID string) ([]*entity.ProductionRunInput, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProductionRunInput
	for _, in := range r.s.runInputs {
		if in.ProductionRunID == runID {
			out = append(out, clone(in))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r runRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.ProductionRun, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProductionRun
	for id, run := range r.s.runs {
		if r.s.runOwned(id, companyID) {
			out = append(out, clone(run))
		}
	}
	newestFirst(out, func(run *entity.ProductionRun) time.Time { return run.CreatedAt })
	return page(out, limit, offset), nil
}

// ---- finished goods ----

type finishedGoodRepo struct{ s *Store }

func (r finishedGoodRepo) Create(_ context.Context, g *entity.FinishedGoodBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.finishedGoods {
		if other.QRCodeID == g.QRCodeID {
			return domain.ErrDuplicate
		}
	}
	r.s.finishedGoods[g.ID] = clone(g)
	return nil
}

func (r finishedGoodRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.FinishedGoodBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.FinishedGoodBatch
	for _, g := range r.s.finishedGoods {
		if r.s.runOwned(g.ProductionRunID, companyID) {
			out = append(out, clone(g))
		}
	}
	newestFirst(out, func(g *entity.FinishedGoodBatch) time.Time { return g.CreatedAt })
	return page(out, limit, offset), nil
}

// ---- trace ----

type traceRepo struct{ s *Store }

func (r traceRepo) GetChainByQRCode(_ context.Context, qr string) (*repository.TraceChain, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var good *entity.FinishedGoodBatch
	for _, g := range r.s.finishedGoods {
		if g.QRCodeID == qr {
			good = g
			break
		}
	}
	if good == nil {
		return nil, nil
	}
	run, ok := r.s.runs[good.ProductionRunID]
	if !ok {
		return nil, nil
	}
	chain := &repository.TraceChain{FinishedGood: *good, ProductionRun: *run}
	if f, ok := r.s.factories[run.FactoryID]; ok {
		chain.Factory = repository.TraceFactory{Name: f.Name, City: f.City, Country: f.Country}
	}
	var inputs []*entity.ProductionRunInput
	for _, in := range r.s.runInputs {
		if in.ProductionRunID == run.ID {
			inputs = append(inputs, in)
		}
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].ID < inputs[j].ID })
	for _, in := range inputs {
		b := r.s.rawMaterials[in.RawMaterialBatchID]
		if b == nil {
			continue
		}
		rm := repository.TraceRawMaterial{
			BatchID:      b.ID,
			MaterialName: b.MaterialName,
			MaterialType: b.MaterialType,
			BatchNumber:  b.BatchNumber,
			QuantityUsed: in.QuantityUsed,
			Unit:         in.Unit,
			ReceivedDate: b.ReceivedDate,
		}
		if sp := r.s.suppliers[b.SupplierID]; sp != nil {
			rm.Supplier = repository.TraceSupplier{ID: sp.ID, Name: sp.Name, Country: sp.Country, Certifications: sp.Certifications}
		}
		chain.RawMaterials = append(chain.RawMaterials, rm)
	}
	return chain, nil
}

// ---- metrics ----

type metricRepo struct{ s *Store }

func (r metricRepo) InsertEnergy(_ context.Context, rows []*entity.EnergyMetric) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.MetricErr != nil {
		return 0, r.s.MetricErr
	}
	r.s.Energy = append(r.s.Energy, rows...)
	return int64(len(rows)), nil
}

func (r metricRepo) InsertWater(_ context.Context, rows []*entity.WaterMetric) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.MetricErr != nil {
		return 0, r.s.MetricErr
	}
	r.s.Water = append(r.s.Water, rows...)
	return int64(len(rows)), nil
}

func (r metricRepo) InsertWaste(_ context.Context, rows []*entity.WasteMetric) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.MetricErr != nil {
		return 0, r.s.MetricErr
	}
	r.s.Waste = append(r.s.Waste, rows...)
	return int64(len(rows)), nil
}

// ---- audit ----

type auditRepo struct{ s *Store }

func (r auditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.AuditErr != nil {
		return r.s.AuditErr
	}
	r.s.auditLogs[l.ID] = clone(l)
	return nil
}

func (r auditRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.AuditLog
	for _, l := range r.s.auditLogs {
		if l.CompanyID == companyID {
			out = append(out, clone(l))
		}
	}
	newestFirst(out, func(l *entity.AuditLog) time.Time { return l.CreatedAt })
	return page(out, limit, offset), nil
}

// ---- reports ----

type reportRepo struct{ s *Store }

func (r reportRepo) Create(_ context.Context, rep *entity.ComplianceReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reports[rep.ID] = clone(rep)
	return nil
}

func (r reportRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.ComplianceReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep, ok := r.s.reports[id]
	if !ok || rep.CompanyID != companyID {
		return nil, nil
	}
	return clone(rep), nil
}

func (r reportRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.ComplianceReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ComplianceReport
	for _, rep := range r.s.reports {
		if rep.CompanyID == companyID {
			c := clone(rep)
			c.ReportContent = ""
			c.Metrics = nil
			out = append(out, c)
		}
	}
	newestFirst(out, func(rep *entity.ComplianceReport) time.Time { return rep.CreatedAt })
	return out, nil
}

// ---- helpers para tests ----

// AllAuditLogs devuelve todos los registros de auditoría.
func (s *Store) AllAuditLogs() []*entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.AuditLog, 0, len(s.auditLogs))
	for _, l := range s.auditLogs {
		out = append(out, clone(l))
	}
	return out
}

// CountCompanies cantidad de empresas almacenadas.
func (s *Store) CountCompanies() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.companies)
}

// CountUsers cantidad de usuarios almacenados.
func (s *Store) CountUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
