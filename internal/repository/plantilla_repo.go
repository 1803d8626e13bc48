package repository

import (
	"context"

	"repairsuite/internal/model"

	"gorm.io/gorm"
)

type PlantillaRepository interface {
	// Upsert por (evento, canal): la configuración de plantillas es cosmética
	// y la última edición gana.
	Guardar(ctx context.Context, p *model.PlantillaNotificacion) error
	FindActiva(ctx context.Context, evento, canal string) (*model.PlantillaNotificacion, error)
	List(ctx context.Context) ([]model.PlantillaNotificacion, error)
}

type plantillaRepo struct{ db *gorm.DB }

func NewPlantillaRepository(db *gorm.DB) PlantillaRepository { return &plantillaRepo{db: db} }

func (r *plantillaRepo) Guardar(ctx context.Context, p *model.PlantillaNotificacion) error {
	var existente model.PlantillaNotificacion
	err := r.db.WithContext(ctx).
		Where("evento = ? AND canal = ?", p.Evento, p.Canal).
		First(&existente).Error
	if err == nil {
		p.ID = existente.ID
		p.CreatedAt = existente.CreatedAt
		return r.db.WithContext(ctx).Save(p).Error
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *plantillaRepo) FindActiva(ctx context.Context, evento, canal string) (*model.PlantillaNotificacion, error) {
	var p model.PlantillaNotificacion
	err := r.db.WithContext(ctx).
		Where("evento = ? AND canal = ? AND activa = true", evento, canal).
		First(&p).Error
	return &p, err
}

func (r *plantillaRepo) List(ctx context.Context) ([]model.PlantillaNotificacion, error) {
	var plantillas []model.PlantillaNotificacion
	err := r.db.WithContext(ctx).Order("evento ASC, canal ASC").Find(&plantillas).Error
	return plantillas, err
}
