// seed prepara una base nueva: aplica migraciones, crea el primer administrador y
// opcionalmente carga marcas, modelos y colores desde un CSV (columnas brand,model,color).
//
// Uso: go run ./cmd/seed -email admin@empresa.com -password 'secreta123' [-catalog catalogo.csv] [-latin1]
// La conexión se toma de las mismas variables que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-admin/internal/application/usecase"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/csvfile"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-admin/pkg/config"
	"github.com/jhoicas/inventory-admin/pkg/logger"
)

func main() {
	email := flag.String("email", "", "correo del administrador inicial")
	password := flag.String("password", "", "contraseña del administrador (mínimo 8 caracteres)")
	firstName := flag.String("name", "Administrador", "nombre del administrador")
	catalogPath := flag.String("catalog", "", "CSV con columnas brand,model,color")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name+"-seed")
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("migrations", applied).Msg("migraciones al día")

	if *email != "" {
		if err := seedAdmin(ctx, postgres.NewUserRepository(pool), *email, *password, *firstName); err != nil {
			log.Fatal().Err(err).Str("email", *email).Msg("crear administrador")
		}
		log.Info().Str("email", *email).Msg("administrador listo")
	}

	if *catalogPath != "" {
		catalogUC := usecase.NewCatalogUseCase(
			postgres.NewTxRunner(pool),
			postgres.NewCatalogRepository(pool),
			postgres.NewItemRepository(pool),
			postgres.NewActivityLogRepository(pool),
		)
		n, err := seedCatalog(ctx, catalogUC, *catalogPath, *latin1)
		if err != nil {
			log.Fatal().Err(err).Str("file", *catalogPath).Msg("cargar catálogo")
		}
		log.Info().Int("rows", n).Msg("catálogo cargado")
	}
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
}

// seedAdmin no toca al usuario si el correo ya existe.
func seedAdmin(ctx context.Context, users userStore, email, password, firstName string) error {
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if len(password) < 8 {
		return fmt.Errorf("la contraseña debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now()
	return users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

type catalogEnsurer interface {
	Ensure(ctx context.Context, brand, model, color string) (usecase.Names, error)
}

// seedCatalog devuelve cuántas filas se registraron; la cabecera es obligatoria.
func seedCatalog(ctx context.Context, catalog catalogEnsurer, path string, latin1 bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csvfile.NewReader()
	if latin1 {
		reader = csvfile.NewLatin1Reader()
	}
	rows, err := reader.Read(f)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range []string{"brand", "model", "color"} {
		if _, ok := cols[c]; !ok {
			return 0, fmt.Errorf("falta la columna %q", c)
		}
	}
	n := 0
	for i, row := range rows[1:] {
		get := func(c string) string {
			if idx := cols[c]; idx < len(row) {
				return row[idx]
			}
			return ""
		}
		if _, err := catalog.Ensure(ctx, get("brand"), get("model"), get("color")); err != nil {
			return n, fmt.Errorf("fila %d: %w", i+2, err)
		}
		n++
	}
	return n, nil
}
