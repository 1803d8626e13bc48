package lifecycle

// Rol es el rol del actor que solicita una transición.
// Coincide con la columna usuarios.rol.
type Rol string

const (
	RolAdministrador Rol = "administrador"
	RolRecepcion     Rol = "recepcion"
	RolTecnico       Rol = "tecnico"
)

type arista struct{ de, a Estado }

// Matriz de permisos por arista. Regla general:
//   - transiciones de diagnóstico y de taller → tecnico
//   - transiciones de cara al cliente (aprobación, entrega, cobro) → recepcion/administrador
//   - Cancelada → autoridad de override del administrador (ver TienePermiso)
var permisosPorArista = map[arista][]Rol{
	{EstadoEsperandoDiagnostico, EstadoEnDiagnostico}:       {RolTecnico},
	{EstadoEnDiagnostico, EstadoDiagnosticoCompleto}:        {RolTecnico},
	{EstadoDiagnosticoCompleto, EstadoEsperandoAprobacion}:  {RolRecepcion, RolAdministrador},
	{EstadoDiagnosticoCompleto, EstadoEnReparacion}:         {RolRecepcion, RolAdministrador},
	{EstadoEsperandoAprobacion, EstadoEnReparacion}:         {RolRecepcion, RolAdministrador},
	{EstadoEnReparacion, EstadoReparacionTerminada}:         {RolTecnico},
	{EstadoReparacionTerminada, EstadoListaParaEntrega}:     {RolRecepcion, RolAdministrador},
	{EstadoListaParaEntrega, EstadoEnRecepcion}:             {RolRecepcion, RolAdministrador},
	{EstadoEnRecepcion, EstadoPagadoYEntregado}:             {RolRecepcion, RolAdministrador},
}

// TienePermiso responde si el rol puede disparar la arista (de → a).
// Presupone que la arista ya pasó EsTransicionValida; un permiso concedido
// sobre una arista inexistente no la vuelve válida.
func TienePermiso(de, a Estado, rol Rol) bool {
	// Override: el administrador puede cancelar desde cualquier estado no terminal.
	if a == EstadoCancelada {
		return rol == RolAdministrador
	}
	for _, permitido := range permisosPorArista[arista{de, a}] {
		if permitido == rol {
			return true
		}
	}
	return false
}
