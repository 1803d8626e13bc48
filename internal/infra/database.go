package infra

import (
	"fmt"

	"repairsuite/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (la secuencia de folios, índices parciales).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Exposed so the
// integration harness can prepare a fresh database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Equipo{},
		&model.Proveedor{},
		&model.Producto{},
		&model.MovimientoStock{},
		&model.OrdenServicio{},
		&model.Diagnostico{},
		&model.Reparacion{},
		&model.Pago{},
		&model.SolicitudInventario{},
		&model.HistorialOrden{},
		&model.PlantillaNotificacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate no cubre. Cada
// sentencia usa IF NOT EXISTS para que re-correr sobre una base ya parchada
// sea un no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Secuencia para la asignación atómica de folios "OS-NNNNNN".
		{"create folio sequence",
			`CREATE SEQUENCE IF NOT EXISTS ordenes_folio_seq START 1`},

		// Índice parcial para el cron de recordatorios: solo órdenes listas
		// para entrega, ordenadas por antigüedad.
		{"create partial index for reminder cron", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_ordenes_lista_entrega') THEN
    CREATE INDEX idx_ordenes_lista_entrega
        ON ordenes_servicio (ultima_actualizacion)
        WHERE estado = 'Lista para entrega';
  END IF;
END $$`},

		// El historial se consulta siempre por orden y en orden cronológico.
		{"create historial compound index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_historial_orden_fecha') THEN
    CREATE INDEX idx_historial_orden_fecha
        ON historial_ordenes (orden_id, fecha);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
