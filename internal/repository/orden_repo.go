package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairsuite/internal/dto"
	"repairsuite/internal/lifecycle"
	"repairsuite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrdenRepository carga y guarda el agregado OrdenServicio como unidad.
// Los métodos *Tx exigen la transacción abierta por el servicio: todo lo que
// muta una orden (estado, historial, pagos, solicitudes) viaja en una sola TX.
type OrdenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.OrdenServicio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenServicio, error)
	FindByFolio(ctx context.Context, folio string) (*model.OrdenServicio, error)
	List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenServicio, int64, error)
	ListPorEstado(ctx context.Context, estado lifecycle.Estado) ([]model.OrdenServicio, error)
	// ListParaRecordatorio: órdenes listas para entrega sin movimiento desde antes del corte.
	ListParaRecordatorio(ctx context.Context, antesDe time.Time, limit int) ([]model.OrdenServicio, error)
	NextFolio(ctx context.Context, tx *gorm.DB) (string, error)

	// UpdateOrdenTx escribe los campos escalares del agregado con chequeo
	// optimista de versión; devuelve lifecycle.ErrConflictoConcurrencia si la
	// orden cambió desde la lectura del llamador.
	UpdateOrdenTx(tx *gorm.DB, o *model.OrdenServicio) error

	// Canales append-only del agregado.
	AppendHistorialTx(tx *gorm.DB, h *model.HistorialOrden) error
	AppendPagoTx(tx *gorm.DB, p *model.Pago) error
	CreateDiagnosticoTx(tx *gorm.DB, d *model.Diagnostico) error
	CreateReparacionTx(tx *gorm.DB, r *model.Reparacion) error

	// Sub-flujo de solicitudes de inventario.
	CreateSolicitudTx(tx *gorm.DB, s *model.SolicitudInventario) error
	FindSolicitudByID(ctx context.Context, id uuid.UUID) (*model.SolicitudInventario, error)
	// ResolverSolicitudTx pasa una solicitud pendiente a aprobada/rechazada.
	// La cláusula WHERE estado='pendiente' hace el cierre idempotente-seguro:
	// cero filas afectadas significa que otro actor la resolvió primero.
	ResolverSolicitudTx(tx *gorm.DB, s *model.SolicitudInventario) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) DB() *gorm.DB { return r.db }

func (r *ordenRepo) Create(ctx context.Context, tx *gorm.DB, o *model.OrdenServicio) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenServicio, error) {
	var o model.OrdenServicio
	err := r.db.WithContext(ctx).
		Preload("Diagnostico").
		Preload("Reparacion").
		Preload("Pagos", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Solicitudes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Historial", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") }).
		First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lifecycle.ErrNoEncontrada
	}
	return &o, err
}

func (r *ordenRepo) FindByFolio(ctx context.Context, folio string) (*model.OrdenServicio, error) {
	var o model.OrdenServicio
	err := r.db.WithContext(ctx).Where("folio = ?", folio).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lifecycle.ErrNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, o.ID)
}

func (r *ordenRepo) List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenServicio, int64, error) {
	var ordenes []model.OrdenServicio
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.OrdenServicio{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Pagos").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ordenes).Error
	return ordenes, total, err
}

func (r *ordenRepo) ListPorEstado(ctx context.Context, estado lifecycle.Estado) ([]model.OrdenServicio, error) {
	var ordenes []model.OrdenServicio
	err := r.db.WithContext(ctx).Where("estado = ?", estado).Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) ListParaRecordatorio(ctx context.Context, antesDe time.Time, limit int) ([]model.OrdenServicio, error) {
	var ordenes []model.OrdenServicio
	err := r.db.WithContext(ctx).
		Where("estado = ? AND ultima_actualizacion < ?", lifecycle.EstadoListaParaEntrega, antesDe).
		Order("ultima_actualizacion ASC").
		Limit(limit).
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) NextFolio(ctx context.Context, tx *gorm.DB) (string, error) {
	// Secuencia de PostgreSQL para asignación atómica del folio
	var num int
	if err := tx.WithContext(ctx).Raw("SELECT nextval('ordenes_folio_seq')").Scan(&num).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("OS-%06d", num), nil
}

func (r *ordenRepo) UpdateOrdenTx(tx *gorm.DB, o *model.OrdenServicio) error {
	versionLeida := o.Version
	o.Version++
	res := tx.Model(&model.OrdenServicio{}).
		Where("id = ? AND version = ?", o.ID, versionLeida).
		Updates(map[string]interface{}{
			"estado":              o.Estado,
			"prioridad":           o.Prioridad,
			"cliente_aprobado":    o.ClienteAprobado,
			"costo_reparacion":    o.CostoReparacion,
			"tecnico_asignado_id": o.TecnicoAsignadoID,
			"version":             o.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lifecycle.ErrConflictoConcurrencia
	}
	return nil
}

func (r *ordenRepo) AppendHistorialTx(tx *gorm.DB, h *model.HistorialOrden) error {
	return tx.Create(h).Error
}

func (r *ordenRepo) AppendPagoTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *ordenRepo) CreateDiagnosticoTx(tx *gorm.DB, d *model.Diagnostico) error {
	return tx.Create(d).Error
}

func (r *ordenRepo) CreateReparacionTx(tx *gorm.DB, rep *model.Reparacion) error {
	return tx.Create(rep).Error
}

func (r *ordenRepo) CreateSolicitudTx(tx *gorm.DB, s *model.SolicitudInventario) error {
	return tx.Create(s).Error
}

func (r *ordenRepo) FindSolicitudByID(ctx context.Context, id uuid.UUID) (*model.SolicitudInventario, error) {
	var s model.SolicitudInventario
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lifecycle.ErrSolicitudNoEncontrada
	}
	return &s, err
}

func (r *ordenRepo) ResolverSolicitudTx(tx *gorm.DB, s *model.SolicitudInventario) error {
	res := tx.Model(&model.SolicitudInventario{}).
		Where("id = ? AND estado = ?", s.ID, model.SolicitudPendiente).
		Updates(map[string]interface{}{
			"estado":           s.Estado,
			"aprobado_por":     s.AprobadoPor,
			"fecha_aprobacion": s.FechaAprobacion,
			"justificacion":    s.Justificacion,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lifecycle.ErrConflictoConcurrencia
	}
	return nil
}
