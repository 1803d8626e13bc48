package service

import (
	"context"
	"errors"
	"fmt"

	"repairsuite/internal/dto"
	"repairsuite/internal/model"
	"repairsuite/internal/repository"

	"github.com/google/uuid"
)

type EquipoService interface {
	RegistrarEquipo(ctx context.Context, req dto.CrearEquipoRequest) (*dto.EquipoResponse, error)
	ObtenerEquipo(ctx context.Context, id uuid.UUID) (*dto.EquipoResponse, error)
	ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.EquipoResponse, error)
}

type equipoService struct {
	repo     repository.EquipoRepository
	clientes repository.ClienteRepository
}

func NewEquipoService(repo repository.EquipoRepository, clientes repository.ClienteRepository) EquipoService {
	return &equipoService{repo: repo, clientes: clientes}
}

func (s *equipoService) RegistrarEquipo(ctx context.Context, req dto.CrearEquipoRequest) (*dto.EquipoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", err)
	}
	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, fmt.Errorf("cliente %s no encontrado", req.ClienteID)
	}

	equipo := &model.Equipo{
		ClienteID:     clienteID,
		Tipo:          req.Tipo,
		Marca:         req.Marca,
		Modelo:        req.Modelo,
		NumeroSerie:   req.NumeroSerie,
		Observaciones: req.Observaciones,
	}
	if err := s.repo.Create(ctx, equipo); err != nil {
		return nil, err
	}
	return equipoToResponse(equipo), nil
}

func (s *equipoService) ObtenerEquipo(ctx context.Context, id uuid.UUID) (*dto.EquipoResponse, error) {
	equipo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("equipo no encontrado")
	}
	return equipoToResponse(equipo), nil
}

func (s *equipoService) ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.EquipoResponse, error) {
	equipos, err := s.repo.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EquipoResponse, 0, len(equipos))
	for i := range equipos {
		resp = append(resp, *equipoToResponse(&equipos[i]))
	}
	return resp, nil
}

func equipoToResponse(e *model.Equipo) *dto.EquipoResponse {
	return &dto.EquipoResponse{
		ID:            e.ID.String(),
		ClienteID:     e.ClienteID.String(),
		Tipo:          e.Tipo,
		Marca:         e.Marca,
		Modelo:        e.Modelo,
		NumeroSerie:   e.NumeroSerie,
		Observaciones: e.Observaciones,
	}
}
