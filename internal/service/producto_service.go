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

type ProductoService interface {
	CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerProducto(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ListarProductos(ctx context.Context, filter repository.ProductoFilter) ([]dto.ProductoResponse, int64, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	DesactivarProducto(ctx context.Context, id uuid.UUID) error
	// AlertasStock lista los productos activos con stock en o bajo el mínimo.
	AlertasStock(ctx context.Context) ([]dto.ProductoResponse, error)
}

type productoService struct {
	repo        repository.ProductoRepository
	proveedores repository.ProveedorRepository
}

func NewProductoService(repo repository.ProductoRepository, proveedores repository.ProveedorRepository) ProductoService {
	return &productoService{repo: repo, proveedores: proveedores}
}

func (s *productoService) CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.IsNegative() {
		return nil, errors.New("el precio no puede ser negativo")
	}
	producto := &model.Producto{
		Nombre:      req.Nombre,
		SKU:         req.SKU,
		Precio:      req.Precio,
		StockActual: req.StockActual,
		StockMinimo: req.StockMinimo,
		Activo:      true,
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		if _, err := s.proveedores.FindByID(ctx, pid); err != nil {
			return nil, fmt.Errorf("proveedor %s no encontrado", *req.ProveedorID)
		}
		producto.ProveedorID = &pid
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) ObtenerProducto(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(producto), nil
}

func (s *productoService) ListarProductos(ctx context.Context, filter repository.ProductoFilter) ([]dto.ProductoResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, *productoToResponse(&productos[i]))
	}
	return resp, total, nil
}

func (s *productoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Nombre != "" {
		producto.Nombre = req.Nombre
	}
	if !req.Precio.IsZero() {
		if req.Precio.IsNegative() {
			return nil, errors.New("el precio no puede ser negativo")
		}
		producto.Precio = req.Precio
	}
	if req.StockMinimo != nil {
		producto.StockMinimo = *req.StockMinimo
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		producto.ProveedorID = &pid
	}
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) DesactivarProducto(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) AlertasStock(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, _, err := s.repo.List(ctx, repository.ProductoFilter{Page: 1, Limit: 500})
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.ProductoResponse, 0)
	for i := range productos {
		p := &productos[i]
		if p.StockActual <= p.StockMinimo {
			alertas = append(alertas, *productoToResponse(p))
		}
	}
	return alertas, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	var proveedorID *string
	if p.ProveedorID != nil {
		s := p.ProveedorID.String()
		proveedorID = &s
	}
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		SKU:         p.SKU,
		Precio:      p.Precio,
		StockActual: p.StockActual,
		StockMinimo: p.StockMinimo,
		ProveedorID: proveedorID,
		Activo:      p.Activo,
	}
}
