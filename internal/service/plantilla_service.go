package service

import (
	"context"

	"repairsuite/internal/dto"
	"repairsuite/internal/model"
	"repairsuite/internal/repository"
)

// PlantillaService administra los textos de notificación por (evento, canal).
// Es configuración cosmética: nunca toca la máquina de estados.
type PlantillaService interface {
	GuardarPlantilla(ctx context.Context, req dto.GuardarPlantillaRequest) (*dto.PlantillaResponse, error)
	ListarPlantillas(ctx context.Context) ([]dto.PlantillaResponse, error)
}

type plantillaService struct {
	repo repository.PlantillaRepository
}

func NewPlantillaService(repo repository.PlantillaRepository) PlantillaService {
	return &plantillaService{repo: repo}
}

func (s *plantillaService) GuardarPlantilla(ctx context.Context, req dto.GuardarPlantillaRequest) (*dto.PlantillaResponse, error) {
	activa := true
	if req.Activa != nil {
		activa = *req.Activa
	}
	plantilla := &model.PlantillaNotificacion{
		Evento: req.Evento,
		Canal:  req.Canal,
		Asunto: req.Asunto,
		Cuerpo: req.Cuerpo,
		Activa: activa,
	}
	if err := s.repo.Guardar(ctx, plantilla); err != nil {
		return nil, err
	}
	return plantillaToResponse(plantilla), nil
}

func (s *plantillaService) ListarPlantillas(ctx context.Context) ([]dto.PlantillaResponse, error) {
	plantillas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PlantillaResponse, 0, len(plantillas))
	for i := range plantillas {
		resp = append(resp, *plantillaToResponse(&plantillas[i]))
	}
	return resp, nil
}

func plantillaToResponse(p *model.PlantillaNotificacion) *dto.PlantillaResponse {
	return &dto.PlantillaResponse{
		ID:     p.ID.String(),
		Evento: p.Evento,
		Canal:  p.Canal,
		Asunto: p.Asunto,
		Cuerpo: p.Cuerpo,
		Activa: p.Activa,
	}
}
