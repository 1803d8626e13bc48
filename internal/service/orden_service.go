package service

import (
	"context"
	"fmt"
	"time"

	"repairsuite/internal/dto"
	"repairsuite/internal/lifecycle"
	"repairsuite/internal/model"
	"repairsuite/internal/repository"
	"repairsuite/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Actor es quien dispara la operación, resuelto por el middleware de auth.
type Actor struct {
	ID     uuid.UUID
	Nombre string
	Rol    lifecycle.Rol
}

// OrdenService es el ejecutor del ciclo de vida: la única pieza que muta
// órdenes. Todo lo demás (handlers, workers) pasa por acá.
type OrdenService interface {
	CrearOrden(ctx context.Context, actor Actor, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	AplicarTransicion(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.CambiarEstadoRequest) (*dto.OrdenResponse, error)
	RegistrarDiagnostico(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.RegistrarDiagnosticoRequest) (*dto.OrdenResponse, error)
	AprobarCotizacion(ctx context.Context, actor Actor, ordenID uuid.UUID) (*dto.OrdenResponse, error)
	AsignarTecnico(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.AsignarTecnicoRequest) (*dto.OrdenResponse, error)
	RegistrarReparacion(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.RegistrarReparacionRequest) (*dto.OrdenResponse, error)
	ObtenerOrden(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
	ObtenerPorFolio(ctx context.Context, folio string) (*dto.OrdenResponse, error)
	ListarOrdenes(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error)
}

type ordenService struct {
	repo       repository.OrdenRepository
	clientes   repository.ClienteRepository
	equipos    repository.EquipoRepository
	usuarios   repository.UsuarioRepository
	rdb        *redis.Client
	dispatcher *worker.Dispatcher
}

func NewOrdenService(
	repo repository.OrdenRepository,
	clientes repository.ClienteRepository,
	equipos repository.EquipoRepository,
	usuarios repository.UsuarioRepository,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
) OrdenService {
	return &ordenService{
		repo:       repo,
		clientes:   clientes,
		equipos:    equipos,
		usuarios:   usuarios,
		rdb:        rdb,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

const bloqueoOrdenTTL = 5 * time.Second

// conBloqueoOrden toma un lock corto en Redis por orden antes de correr fn.
// Es un atajo para fallar rápido bajo contención; la garantía real de
// serialización es el chequeo de versión en UpdateOrdenTx. Con rdb nil
// (modo test) corre fn directo.
func conBloqueoOrden(ctx context.Context, rdb *redis.Client, ordenID uuid.UUID, fn func() error) error {
	if rdb == nil {
		return fn()
	}
	key := "lock:orden:" + ordenID.String()
	ok, err := rdb.SetNX(ctx, key, 1, bloqueoOrdenTTL).Result()
	if err != nil {
		// Redis caído no frena la operación: queda el chequeo optimista.
		log.Warn().Err(err).Str("orden_id", ordenID.String()).Msg("lock redis no disponible")
		return fn()
	}
	if !ok {
		return lifecycle.ErrConflictoConcurrencia
	}
	defer rdb.Del(ctx, key)
	return fn()
}

// ── CrearOrden ────────────────────────────────────────────────────────────────
// Alta de la orden con cobro del diagnóstico en el mismo acto:
//   1. Resolver cliente y equipo de los directorios (pre-flight, fuera de TX)
//   2. BEGIN TX: nextval folio, crear orden + pago de diagnóstico + primera
//      entrada de historial (estado_anterior NULL)
//   3. COMMIT
//   4. (async) encolar evento os_creada

func (s *ordenService) CrearOrden(ctx context.Context, actor Actor, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", err)
	}
	equipoID, err := uuid.Parse(req.EquipoID)
	if err != nil {
		return nil, fmt.Errorf("equipo_id inválido: %w", err)
	}
	if req.CostoDiagnostico.IsNegative() {
		return nil, &lifecycle.PrecondicionError{
			Codigo:  lifecycle.RazonMontoInvalido,
			Mensaje: "el costo de diagnóstico no puede ser negativo",
		}
	}

	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente %s no encontrado", req.ClienteID)
	}
	equipo, err := s.equipos.FindByID(ctx, equipoID)
	if err != nil {
		return nil, fmt.Errorf("equipo %s no encontrado", req.EquipoID)
	}
	if equipo.ClienteID != clienteID {
		return nil, fmt.Errorf("el equipo %s no pertenece al cliente %s", req.EquipoID, req.ClienteID)
	}

	prioridad := req.Prioridad
	if prioridad == "" {
		prioridad = "normal"
	}
	costoDiagnostico := req.CostoDiagnostico
	if req.EsGarantia {
		// Garantía: el diagnóstico no se cobra.
		costoDiagnostico = decimal.Zero
	}

	var orden model.OrdenServicio
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		folio, err := s.repo.NextFolio(ctx, tx)
		if err != nil {
			return err
		}

		orden = model.OrdenServicio{
			Folio:            folio,
			ClienteID:        clienteID,
			EquipoID:         equipoID,
			ClienteNombre:    cliente.Nombre,
			ClienteTelefono:  cliente.Telefono,
			EquipoEtiqueta:   equipo.Etiqueta(),
			FallaReportada:   req.FallaReportada,
			Estado:           lifecycle.EstadoInicial,
			Prioridad:        prioridad,
			EsGarantia:       req.EsGarantia,
			CostoDiagnostico: costoDiagnostico,
			Version:          1,
		}
		if err := s.repo.Create(ctx, tx, &orden); err != nil {
			return err
		}

		// Primera entrada del historial: estado_anterior NULL marca la creación.
		alta := &model.HistorialOrden{
			OrdenID:     orden.ID,
			EstadoNuevo: lifecycle.EstadoInicial,
			Usuario:     actor.Nombre,
			Fecha:       time.Now(),
		}
		if err := s.repo.AppendHistorialTx(tx, alta); err != nil {
			return err
		}
		orden.Historial = append(orden.Historial, *alta)

		if costoDiagnostico.IsPositive() {
			pago := &model.Pago{
				OrdenID:     orden.ID,
				Tipo:        "diagnostico",
				Metodo:      req.MetodoPago,
				Monto:       costoDiagnostico,
				RecibidoPor: actor.Nombre,
			}
			if err := s.repo.AppendPagoTx(tx, pago); err != nil {
				return err
			}
			orden.Pagos = append(orden.Pagos, *pago)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.encolarEvento(ctx, &orden, model.EventoOSCreada)
	return ordenToResponse(&orden), nil
}

// ── AplicarTransicion ─────────────────────────────────────────────────────────
// El ejecutor corre los chequeos en orden fijo — arista, permiso, reglas — y
// recién entonces muta. Si el estado resultante tiene continuación automática,
// los saltos se encadenan con autor "Sistema" dentro de la MISMA transacción:
// desde afuera nunca se observa el estado intermedio.

func (s *ordenService) AplicarTransicion(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.CambiarEstadoRequest) (*dto.OrdenResponse, error) {
	var orden *model.OrdenServicio
	err := conBloqueoOrden(ctx, s.rdb, ordenID, func() error {
		var err error
		orden, err = s.repo.FindByID(ctx, ordenID)
		if err != nil {
			return err
		}

		destino, err := lifecycle.ParseEstado(req.Estado)
		if err != nil {
			return &lifecycle.TransicionInvalidaError{De: orden.Estado, A: lifecycle.Estado(req.Estado)}
		}
		if lifecycle.EsTerminal(orden.Estado) {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonOrdenTerminal,
				Mensaje: fmt.Sprintf("la orden está en estado terminal %q y no admite transiciones", orden.Estado),
			}
		}
		if !lifecycle.EsTransicionValida(orden.Estado, destino) {
			return &lifecycle.TransicionInvalidaError{De: orden.Estado, A: destino}
		}
		if !lifecycle.TienePermiso(orden.Estado, destino, actor.Rol) {
			return &lifecycle.PermisoDenegadoError{De: orden.Estado, A: destino, Rol: actor.Rol}
		}
		if err := lifecycle.ValidarReglas(orden.Estado, destino, orden.ContextoReglas()); err != nil {
			return err
		}

		// Todas las verificaciones pasaron: armar la cadena de entradas.
		ahora := time.Now()
		anterior := orden.Estado
		entradas := []*model.HistorialOrden{{
			OrdenID:        orden.ID,
			EstadoAnterior: &anterior,
			EstadoNuevo:    destino,
			Usuario:        actor.Nombre,
			Notas:          req.Notas,
			Fecha:          ahora,
		}}

		actual := destino
		for {
			siguiente, ok := lifecycle.SiguienteAutomatico(actual)
			if !ok {
				break
			}
			previo := actual
			entradas = append(entradas, &model.HistorialOrden{
				OrdenID:        orden.ID,
				EstadoAnterior: &previo,
				EstadoNuevo:    siguiente,
				Usuario:        model.UsuarioSistema,
				Fecha:          ahora,
			})
			actual = siguiente
		}

		orden.Estado = actual
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.UpdateOrdenTx(tx, orden); err != nil {
				return err
			}
			for _, entrada := range entradas {
				if err := s.repo.AppendHistorialTx(tx, entrada); err != nil {
					return err
				}
				orden.Historial = append(orden.Historial, *entrada)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if orden.Estado == lifecycle.EstadoListaParaEntrega {
		s.encolarEvento(ctx, orden, model.EventoListoParaEntrega)
	}
	return ordenToResponse(orden), nil
}

// ── RegistrarDiagnostico ──────────────────────────────────────────────────────
// Escribe el hallazgo del técnico y fija el costo de reparación (la cotización).
// Write-once: el segundo intento se rechaza; un re-diagnóstico es orden nueva.

func (s *ordenService) RegistrarDiagnostico(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.RegistrarDiagnosticoRequest) (*dto.OrdenResponse, error) {
	if actor.Rol == lifecycle.RolRecepcion {
		return nil, lifecycle.ErrPermisoDenegado
	}
	if req.CostoEstimado.IsNegative() {
		return nil, &lifecycle.PrecondicionError{
			Codigo:  lifecycle.RazonMontoInvalido,
			Mensaje: "el costo estimado no puede ser negativo",
		}
	}

	var orden *model.OrdenServicio
	err := conBloqueoOrden(ctx, s.rdb, ordenID, func() error {
		var err error
		orden, err = s.repo.FindByID(ctx, ordenID)
		if err != nil {
			return err
		}
		if lifecycle.EsTerminal(orden.Estado) {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonOrdenTerminal,
				Mensaje: "la orden está cerrada",
			}
		}
		if orden.Diagnostico != nil {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonRegistroDuplicado,
				Mensaje: "la orden ya tiene un diagnóstico registrado",
			}
		}

		dias := req.TiempoEstimadoDias
		if dias < 1 {
			dias = 1
		}
		diagnostico := &model.Diagnostico{
			OrdenID:            orden.ID,
			TecnicoID:          actor.ID,
			Descripcion:        req.Descripcion,
			CostoEstimado:      req.CostoEstimado,
			TiempoEstimadoDias: dias,
		}
		// La cotización queda fijada en la orden; una garantía no cobra reparación.
		if !orden.EsGarantia {
			orden.CostoReparacion = req.CostoEstimado
		}
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.CreateDiagnosticoTx(tx, diagnostico); err != nil {
				return err
			}
			if err := s.repo.UpdateOrdenTx(tx, orden); err != nil {
				return err
			}
			orden.Diagnostico = diagnostico
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.encolarEvento(ctx, orden, model.EventoCotizacion)
	return ordenToResponse(orden), nil
}

// AprobarCotizacion asienta el sí del cliente. No es una transición: habilita
// la regla que pide aprobación para entrar a reparación.
func (s *ordenService) AprobarCotizacion(ctx context.Context, actor Actor, ordenID uuid.UUID) (*dto.OrdenResponse, error) {
	if actor.Rol == lifecycle.RolTecnico {
		return nil, lifecycle.ErrPermisoDenegado
	}

	var orden *model.OrdenServicio
	err := conBloqueoOrden(ctx, s.rdb, ordenID, func() error {
		var err error
		orden, err = s.repo.FindByID(ctx, ordenID)
		if err != nil {
			return err
		}
		if lifecycle.EsTerminal(orden.Estado) {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonOrdenTerminal,
				Mensaje: "la orden está cerrada",
			}
		}
		if orden.Diagnostico == nil {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonDiagnosticoFaltante,
				Mensaje: "no hay cotización para aprobar: falta el diagnóstico",
			}
		}
		if orden.ClienteAprobado {
			return nil // idempotente
		}
		orden.ClienteAprobado = true
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			return s.repo.UpdateOrdenTx(tx, orden)
		})
	})
	if err != nil {
		return nil, err
	}
	return ordenToResponse(orden), nil
}

// AsignarTecnico vincula un usuario con rol técnico a la orden.
func (s *ordenService) AsignarTecnico(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.AsignarTecnicoRequest) (*dto.OrdenResponse, error) {
	if actor.Rol == lifecycle.RolTecnico {
		return nil, lifecycle.ErrPermisoDenegado
	}
	tecnicoID, err := uuid.Parse(req.TecnicoID)
	if err != nil {
		return nil, fmt.Errorf("tecnico_id inválido: %w", err)
	}
	tecnico, err := s.usuarios.FindByID(ctx, tecnicoID)
	if err != nil {
		return nil, fmt.Errorf("técnico %s no encontrado", req.TecnicoID)
	}
	if tecnico.Rol != string(lifecycle.RolTecnico) || !tecnico.Activo {
		return nil, fmt.Errorf("el usuario %s no es un técnico activo", tecnico.Username)
	}

	var orden *model.OrdenServicio
	err = conBloqueoOrden(ctx, s.rdb, ordenID, func() error {
		var err error
		orden, err = s.repo.FindByID(ctx, ordenID)
		if err != nil {
			return err
		}
		if lifecycle.EsTerminal(orden.Estado) {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonOrdenTerminal,
				Mensaje: "la orden está cerrada",
			}
		}
		orden.TecnicoAsignadoID = &tecnicoID
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			return s.repo.UpdateOrdenTx(tx, orden)
		})
	})
	if err != nil {
		return nil, err
	}
	return ordenToResponse(orden), nil
}

// RegistrarReparacion asienta el cierre técnico del trabajo. Write-once.
func (s *ordenService) RegistrarReparacion(ctx context.Context, actor Actor, ordenID uuid.UUID, req dto.RegistrarReparacionRequest) (*dto.OrdenResponse, error) {
	if actor.Rol == lifecycle.RolRecepcion {
		return nil, lifecycle.ErrPermisoDenegado
	}

	var orden *model.OrdenServicio
	err := conBloqueoOrden(ctx, s.rdb, ordenID, func() error {
		var err error
		orden, err = s.repo.FindByID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden.Estado != lifecycle.EstadoEnReparacion {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonOrdenTerminal,
				Mensaje: fmt.Sprintf("el trabajo se registra con la orden en reparación; está en %q", orden.Estado),
			}
		}
		if orden.Reparacion != nil {
			return &lifecycle.PrecondicionError{
				Codigo:  lifecycle.RazonRegistroDuplicado,
				Mensaje: "la orden ya tiene la reparación registrada",
			}
		}
		reparacion := &model.Reparacion{
			OrdenID:             orden.ID,
			TecnicoID:           actor.ID,
			TrabajoRealizado:    req.TrabajoRealizado,
			RepuestosUtilizados: req.RepuestosUtilizados,
		}
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.CreateReparacionTx(tx, reparacion); err != nil {
				return err
			}
			orden.Reparacion = reparacion
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) ObtenerOrden(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) ObtenerPorFolio(ctx context.Context, folio string) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByFolio(ctx, folio)
	if err != nil {
		return nil, err
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) ListarOrdenes(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado != "" {
		if _, err := lifecycle.ParseEstado(filter.Estado); err != nil {
			return nil, err
		}
	}
	ordenes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenListItem, 0, len(ordenes))
	for i := range ordenes {
		items = append(items, *ordenToListItem(&ordenes[i]))
	}
	return &dto.OrdenListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// encolarEvento arma el payload de notificación y lo despacha best-effort.
func (s *ordenService) encolarEvento(ctx context.Context, orden *model.OrdenServicio, evento string) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.NotificacionPayload{
		Evento:          evento,
		OrdenID:         orden.ID.String(),
		Folio:           orden.Folio,
		ClienteID:       orden.ClienteID.String(),
		ClienteNombre:   orden.ClienteNombre,
		ClienteTelefono: orden.ClienteTelefono,
		EquipoEtiqueta:  orden.EquipoEtiqueta,
		Estado:          string(orden.Estado),
		Monto:           orden.CostoTotal().StringFixed(2),
		Saldo:           orden.SaldoPendiente().StringFixed(2),
	}
	_ = s.dispatcher.EnqueueNotificacion(ctx, payload)
}

// ── mappers ───────────────────────────────────────────────────────────────────

const fechaFormato = "2006-01-02T15:04:05Z"

func ordenToResponse(o *model.OrdenServicio) *dto.OrdenResponse {
	var tecnicoID *string
	if o.TecnicoAsignadoID != nil {
		s := o.TecnicoAsignadoID.String()
		tecnicoID = &s
	}

	siguientes := lifecycle.SiguientesDesde(o.Estado)
	estadosSiguientes := make([]string, 0, len(siguientes))
	for _, e := range siguientes {
		estadosSiguientes = append(estadosSiguientes, string(e))
	}

	pagos := make([]dto.PagoResponse, 0, len(o.Pagos))
	for i := range o.Pagos {
		pagos = append(pagos, *pagoToResponse(&o.Pagos[i]))
	}
	solicitudes := make([]dto.SolicitudResponse, 0, len(o.Solicitudes))
	for i := range o.Solicitudes {
		solicitudes = append(solicitudes, *solicitudToResponse(&o.Solicitudes[i]))
	}
	historial := make([]dto.HistorialResponse, 0, len(o.Historial))
	for _, h := range o.Historial {
		var anterior *string
		if h.EstadoAnterior != nil {
			s := string(*h.EstadoAnterior)
			anterior = &s
		}
		historial = append(historial, dto.HistorialResponse{
			EstadoAnterior: anterior,
			EstadoNuevo:    string(h.EstadoNuevo),
			Usuario:        h.Usuario,
			Notas:          h.Notas,
			Fecha:          h.Fecha.Format(fechaFormato),
		})
	}

	var diagnostico *dto.DiagnosticoResponse
	if o.Diagnostico != nil {
		diagnostico = &dto.DiagnosticoResponse{
			Descripcion:        o.Diagnostico.Descripcion,
			CostoEstimado:      o.Diagnostico.CostoEstimado,
			TiempoEstimadoDias: o.Diagnostico.TiempoEstimadoDias,
			Fecha:              o.Diagnostico.CreatedAt.Format(fechaFormato),
		}
	}
	var reparacion *dto.ReparacionResponse
	if o.Reparacion != nil {
		reparacion = &dto.ReparacionResponse{
			TrabajoRealizado:    o.Reparacion.TrabajoRealizado,
			RepuestosUtilizados: o.Reparacion.RepuestosUtilizados,
			Fecha:               o.Reparacion.CreatedAt.Format(fechaFormato),
		}
	}

	return &dto.OrdenResponse{
		ID:                o.ID.String(),
		Folio:             o.Folio,
		ClienteID:         o.ClienteID.String(),
		ClienteNombre:     o.ClienteNombre,
		ClienteTelefono:   o.ClienteTelefono,
		EquipoID:          o.EquipoID.String(),
		EquipoEtiqueta:    o.EquipoEtiqueta,
		TecnicoAsignadoID: tecnicoID,
		Estado:            string(o.Estado),
		EstadosSiguientes: estadosSiguientes,
		Prioridad:         o.Prioridad,
		EsGarantia:        o.EsGarantia,
		ClienteAprobado:   o.ClienteAprobado,
		CostoDiagnostico:  o.CostoDiagnostico,
		CostoReparacion:   o.CostoReparacion,
		TotalPagado:       o.TotalPagado(),
		SaldoPendiente:    o.SaldoPendiente(),
		Diagnostico:       diagnostico,
		Reparacion:        reparacion,
		Pagos:             pagos,
		Solicitudes:       solicitudes,
		Historial:         historial,
		CreatedAt:         o.CreatedAt.Format(fechaFormato),
	}
}

func ordenToListItem(o *model.OrdenServicio) *dto.OrdenListItem {
	return &dto.OrdenListItem{
		ID:             o.ID.String(),
		Folio:          o.Folio,
		ClienteNombre:  o.ClienteNombre,
		EquipoEtiqueta: o.EquipoEtiqueta,
		Estado:         string(o.Estado),
		Prioridad:      o.Prioridad,
		SaldoPendiente: o.SaldoPendiente(),
		CreatedAt:      o.CreatedAt.Format(fechaFormato),
	}
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	var desglose *dto.DesgloseResponse
	if p.Desglose != nil {
		desglose = &dto.DesgloseResponse{
			Efectivo:      p.Desglose.Efectivo,
			Tarjeta:       p.Desglose.Tarjeta,
			Transferencia: p.Desglose.Transferencia,
			MercadoPago:   p.Desglose.MercadoPago,
			Deposito:      p.Desglose.Deposito,
		}
	}
	return &dto.PagoResponse{
		ID:          p.ID.String(),
		Tipo:        p.Tipo,
		Metodo:      p.Metodo,
		Monto:       p.Monto,
		RecibidoPor: p.RecibidoPor,
		Referencia:  p.Referencia,
		Desglose:    desglose,
		Fecha:       p.CreatedAt.Format(fechaFormato),
	}
}

func solicitudToResponse(s *model.SolicitudInventario) *dto.SolicitudResponse {
	var fechaAprobacion *string
	if s.FechaAprobacion != nil {
		f := s.FechaAprobacion.Format(fechaFormato)
		fechaAprobacion = &f
	}
	return &dto.SolicitudResponse{
		ID:              s.ID.String(),
		OrdenID:         s.OrdenID.String(),
		ProductoID:      s.ProductoID.String(),
		ProductoNombre:  s.ProductoNombre,
		Cantidad:        s.Cantidad,
		SolicitadoPor:   s.SolicitadoPor,
		Estado:          s.Estado,
		AprobadoPor:     s.AprobadoPor,
		FechaAprobacion: fechaAprobacion,
		Justificacion:   s.Justificacion,
		Fecha:           s.CreatedAt.Format(fechaFormato),
	}
}
