package dto

// DTOs de los directorios (clientes, equipos): CRUD plano, sin lógica.

// ─── Clientes ────────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	Telefono  string  `json:"telefono"  validate:"required,min=6,max=30"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"omitempty,min=2,max=120"`
	Telefono  string  `json:"telefono"  validate:"omitempty,min=6,max=30"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Telefono  string  `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
}

// ─── Equipos ─────────────────────────────────────────────────────────────────

type CrearEquipoRequest struct {
	ClienteID     string  `json:"cliente_id"     validate:"required,uuid"`
	Tipo          string  `json:"tipo"           validate:"required,min=2,max=60"`
	Marca         string  `json:"marca"          validate:"required,min=1,max=60"`
	Modelo        string  `json:"modelo"         validate:"required,min=1,max=60"`
	NumeroSerie   *string `json:"numero_serie"   validate:"omitempty,max=80"`
	Observaciones *string `json:"observaciones"  validate:"omitempty,max=500"`
}

type EquipoResponse struct {
	ID            string  `json:"id"`
	ClienteID     string  `json:"cliente_id"`
	Tipo          string  `json:"tipo"`
	Marca         string  `json:"marca"`
	Modelo        string  `json:"modelo"`
	NumeroSerie   *string `json:"numero_serie"`
	Observaciones *string `json:"observaciones"`
}
