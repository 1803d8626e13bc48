package service

// Stubs en memoria de los repositorios. Replican los contratos que importan
// para el motor: chequeo optimista de versión en UpdateOrdenTx, guarda de
// estado pendiente en ResolverSolicitudTx y canales append-only.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairsuite/internal/dto"
	"repairsuite/internal/lifecycle"
	"repairsuite/internal/model"
	"repairsuite/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── OrdenRepository ──────────────────────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes     map[uuid.UUID]*model.OrdenServicio
	solicitudes map[uuid.UUID]*model.SolicitudInventario
	folioSeq    int

	// afterFind corre tras cada FindByID — permite simular a otro escritor
	// colándose entre la lectura y el UPDATE.
	afterFind func()
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{
		ordenes:     make(map[uuid.UUID]*model.OrdenServicio),
		solicitudes: make(map[uuid.UUID]*model.SolicitudInventario),
	}
}

var _ repository.OrdenRepository = (*stubOrdenRepo)(nil)

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

func copiaOrden(o *model.OrdenServicio) *model.OrdenServicio {
	c := *o
	c.Pagos = append([]model.Pago(nil), o.Pagos...)
	c.Solicitudes = append([]model.SolicitudInventario(nil), o.Solicitudes...)
	c.Historial = append([]model.HistorialOrden(nil), o.Historial...)
	if o.Diagnostico != nil {
		d := *o.Diagnostico
		c.Diagnostico = &d
	}
	if o.Reparacion != nil {
		rep := *o.Reparacion
		c.Reparacion = &rep
	}
	return &c
}

func (r *stubOrdenRepo) Create(_ context.Context, _ *gorm.DB, o *model.OrdenServicio) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	r.ordenes[o.ID] = copiaOrden(o)
	return nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenServicio, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, lifecycle.ErrNoEncontrada
	}
	copia := copiaOrden(o)
	if r.afterFind != nil {
		r.afterFind()
	}
	return copia, nil
}

func (r *stubOrdenRepo) FindByFolio(_ context.Context, folio string) (*model.OrdenServicio, error) {
	for _, o := range r.ordenes {
		if o.Folio == folio {
			return copiaOrden(o), nil
		}
	}
	return nil, lifecycle.ErrNoEncontrada
}

func (r *stubOrdenRepo) List(_ context.Context, filter dto.OrdenFilter) ([]model.OrdenServicio, int64, error) {
	var out []model.OrdenServicio
	for _, o := range r.ordenes {
		if filter.Estado != "" && string(o.Estado) != filter.Estado {
			continue
		}
		out = append(out, *copiaOrden(o))
	}
	return out, int64(len(out)), nil
}

func (r *stubOrdenRepo) ListPorEstado(_ context.Context, estado lifecycle.Estado) ([]model.OrdenServicio, error) {
	var out []model.OrdenServicio
	for _, o := range r.ordenes {
		if o.Estado == estado {
			out = append(out, *copiaOrden(o))
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) ListParaRecordatorio(_ context.Context, antesDe time.Time, limit int) ([]model.OrdenServicio, error) {
	var out []model.OrdenServicio
	for _, o := range r.ordenes {
		if o.Estado == lifecycle.EstadoListaParaEntrega && o.UltimaActualizacion.Before(antesDe) && len(out) < limit {
			out = append(out, *copiaOrden(o))
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) NextFolio(_ context.Context, _ *gorm.DB) (string, error) {
	r.folioSeq++
	return fmt.Sprintf("OS-%06d", r.folioSeq), nil
}

func (r *stubOrdenRepo) UpdateOrdenTx(_ *gorm.DB, o *model.OrdenServicio) error {
	stored, ok := r.ordenes[o.ID]
	if !ok {
		return lifecycle.ErrNoEncontrada
	}
	if stored.Version != o.Version {
		return lifecycle.ErrConflictoConcurrencia
	}
	o.Version++
	stored.Estado = o.Estado
	stored.Prioridad = o.Prioridad
	stored.ClienteAprobado = o.ClienteAprobado
	stored.CostoReparacion = o.CostoReparacion
	stored.TecnicoAsignadoID = o.TecnicoAsignadoID
	stored.Version = o.Version
	stored.UltimaActualizacion = time.Now()
	return nil
}

func (r *stubOrdenRepo) AppendHistorialTx(_ *gorm.DB, h *model.HistorialOrden) error {
	stored, ok := r.ordenes[h.OrdenID]
	if !ok {
		return lifecycle.ErrNoEncontrada
	}
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	stored.Historial = append(stored.Historial, *h)
	return nil
}

func (r *stubOrdenRepo) AppendPagoTx(_ *gorm.DB, p *model.Pago) error {
	stored, ok := r.ordenes[p.OrdenID]
	if !ok {
		return lifecycle.ErrNoEncontrada
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	stored.Pagos = append(stored.Pagos, *p)
	return nil
}

func (r *stubOrdenRepo) CreateDiagnosticoTx(_ *gorm.DB, d *model.Diagnostico) error {
	stored, ok := r.ordenes[d.OrdenID]
	if !ok {
		return lifecycle.ErrNoEncontrada
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	copia := *d
	stored.Diagnostico = &copia
	return nil
}

func (r *stubOrdenRepo) CreateReparacionTx(_ *gorm.DB, rep *model.Reparacion) error {
	stored, ok := r.ordenes[rep.OrdenID]
	if !ok {
		return lifecycle.ErrNoEncontrada
	}
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	rep.CreatedAt = time.Now()
	copia := *rep
	stored.Reparacion = &copia
	return nil
}

func (r *stubOrdenRepo) CreateSolicitudTx(_ *gorm.DB, s *model.SolicitudInventario) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	copia := *s
	r.solicitudes[s.ID] = &copia
	if stored, ok := r.ordenes[s.OrdenID]; ok {
		stored.Solicitudes = append(stored.Solicitudes, copia)
	}
	return nil
}

func (r *stubOrdenRepo) FindSolicitudByID(_ context.Context, id uuid.UUID) (*model.SolicitudInventario, error) {
	s, ok := r.solicitudes[id]
	if !ok {
		return nil, lifecycle.ErrSolicitudNoEncontrada
	}
	copia := *s
	return &copia, nil
}

func (r *stubOrdenRepo) ResolverSolicitudTx(_ *gorm.DB, s *model.SolicitudInventario) error {
	stored, ok := r.solicitudes[s.ID]
	if !ok {
		return lifecycle.ErrSolicitudNoEncontrada
	}
	if stored.Estado != model.SolicitudPendiente {
		return lifecycle.ErrConflictoConcurrencia
	}
	stored.Estado = s.Estado
	stored.AprobadoPor = s.AprobadoPor
	stored.FechaAprobacion = s.FechaAprobacion
	stored.Justificacion = s.Justificacion
	return nil
}

// ── Directorios ──────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("cliente no encontrado")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ string) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Activo = false
	}
	return nil
}

type stubEquipoRepo struct {
	equipos map[uuid.UUID]*model.Equipo
}

func newStubEquipoRepo() *stubEquipoRepo {
	return &stubEquipoRepo{equipos: make(map[uuid.UUID]*model.Equipo)}
}

var _ repository.EquipoRepository = (*stubEquipoRepo)(nil)

func (r *stubEquipoRepo) Create(_ context.Context, e *model.Equipo) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.equipos[e.ID] = e
	return nil
}

func (r *stubEquipoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Equipo, error) {
	e, ok := r.equipos[id]
	if !ok {
		return nil, errors.New("equipo no encontrado")
	}
	return e, nil
}

func (r *stubEquipoRepo) ListByCliente(_ context.Context, clienteID uuid.UUID) ([]model.Equipo, error) {
	var out []model.Equipo
	for _, e := range r.equipos {
		if e.ClienteID == clienteID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEquipoRepo) Update(_ context.Context, e *model.Equipo) error {
	r.equipos[e.ID] = e
	return nil
}

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("usuario no encontrado")
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("usuario no encontrado")
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("producto no encontrado")
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			copia := *p
			return &copia, nil
		}
	}
	return nil, errors.New("producto no encontrado")
}

func (r *stubProductoRepo) List(_ context.Context, _ repository.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("producto no encontrado")
	}
	p.StockActual += delta
	return nil
}

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoStock
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, _ repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}
