package entity

import "time"

// Estados de un paciente. Nunca se elimina físicamente: "inactivo" marca el
// egreso de la institución.
const (
	PacienteActivo   = "activo"
	PacienteInactivo = "inactivo"
)

// Paciente representa un residente de la institución.
type Paciente struct {
	ID              string
	Nombre          string
	Apellido        string
	Documento       string // cédula o tarjeta de identidad, único
	FechaNacimiento *time.Time
	Telefono        string
	Direccion       string
	EPS             string // entidad promotora de salud (Colombia)
	Estado          string // activo, inactivo
	FotoURL         string // URL en el almacenamiento de objetos
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Ingreso es un registro de admisión del paciente. Un paciente acumula varios
// ingresos a lo largo de reingresos; solo puede tener uno abierto a la vez
// (FechaSalida nil).
type Ingreso struct {
	ID            string
	PacienteID    string
	FechaIngreso  time.Time
	FechaSalida   *time.Time
	MotivoIngreso string
	MotivoSalida  string
	Voluntario    bool
	CreatedAt     time.Time
}

// Abierto indica si el ingreso sigue vigente (sin fecha de salida).
func (i *Ingreso) Abierto() bool {
	return i.FechaSalida == nil
}

// Familiar es un contacto de familia del paciente (y opcionalmente un usuario
// con rol "familiar" vinculado vía User.PacienteID).
type Familiar struct {
	ID         string
	PacienteID string
	Nombre     string
	Parentesco string // madre, padre, hermano, etc.
	Telefono   string
	Telefono2  string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
