package repository

import (
	"context"

	"repairsuite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipoRepository interface {
	Create(ctx context.Context, e *model.Equipo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Equipo, error)
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Equipo, error)
	Update(ctx context.Context, e *model.Equipo) error
}

type equipoRepo struct{ db *gorm.DB }

func NewEquipoRepository(db *gorm.DB) EquipoRepository { return &equipoRepo{db: db} }

func (r *equipoRepo) Create(ctx context.Context, e *model.Equipo) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *equipoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Equipo, error) {
	var e model.Equipo
	err := r.db.WithContext(ctx).Preload("Cliente").First(&e, id).Error
	return &e, err
}

func (r *equipoRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Equipo, error) {
	var equipos []model.Equipo
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&equipos).Error
	return equipos, err
}

func (r *equipoRepo) Update(ctx context.Context, e *model.Equipo) error {
	return r.db.WithContext(ctx).Save(e).Error
}
