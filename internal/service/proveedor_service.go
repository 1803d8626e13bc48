package service

import (
	"context"
	"errors"

	"repairsuite/internal/dto"
	"repairsuite/internal/model"
	"repairsuite/internal/repository"

	"github.com/google/uuid"
)

type ProveedorService interface {
	CrearProveedor(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ListarProveedores(ctx context.Context) ([]dto.ProveedorResponse, error)
	ActualizarProveedor(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	DesactivarProveedor(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) CrearProveedor(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor := &model.Proveedor{
		RazonSocial: req.RazonSocial,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Direccion:   req.Direccion,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, proveedor); err != nil {
		return nil, err
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) ListarProveedores(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		resp = append(resp, *proveedorToResponse(&proveedores[i]))
	}
	return resp, nil
}

func (s *proveedorService) ActualizarProveedor(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	if req.RazonSocial != "" {
		proveedor.RazonSocial = req.RazonSocial
	}
	if req.Telefono != nil {
		proveedor.Telefono = req.Telefono
	}
	if req.Email != nil {
		proveedor.Email = req.Email
	}
	if req.Direccion != nil {
		proveedor.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, proveedor); err != nil {
		return nil, err
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) DesactivarProveedor(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		Activo:      p.Activo,
	}
}
