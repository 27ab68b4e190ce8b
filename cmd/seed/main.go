// seed crea el usuario administrador inicial de la clínica si aún no existe.
//
// Uso: go run ./cmd/seed <email> <password> [nombre]
// Lee la conexión a PostgreSQL de las mismas variables de entorno que la API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/infrastructure/postgres"
	"github.com/renacer/clinica-api/pkg/config"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed <email> <password> [nombre]")
		os.Exit(1)
	}
	email, password := os.Args[1], os.Args[2]
	nombre := "Administrador"
	if len(os.Args) > 3 {
		nombre = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hashear password: %v\n", err)
		os.Exit(1)
	}

	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, nombre, role, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'active', NOW(), NOW())
		ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), email, string(hash), nombre, entity.RoleAdmin,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Insertar admin: %v\n", err)
		os.Exit(1)
	}
	if tag.RowsAffected() == 0 {
		fmt.Printf("El usuario %s ya existía, no se modificó\n", email)
		return
	}
	fmt.Printf("Usuario administrador %s creado\n", email)
}
