package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/inventory-admin/docs"
	appanalytics "github.com/jhoicas/inventory-admin/internal/application/analytics"
	"github.com/jhoicas/inventory-admin/internal/application/auth"
	"github.com/jhoicas/inventory-admin/internal/application/export"
	"github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/internal/application/usecase"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/csvfile"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/imaging"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/inventory-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/queue"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventory-admin/internal/interfaces/http"
	"github.com/jhoicas/inventory-admin/internal/worker"
	"github.com/jhoicas/inventory-admin/pkg/config"
	"github.com/jhoicas/inventory-admin/pkg/idgen"
	"github.com/jhoicas/inventory-admin/pkg/logger"
)

// staleExportAge antigüedad a partir de la cual un aviso pending en Redis se da por perdido.
const staleExportAge = 30 * time.Minute

// @title                       Inventory Admin API
// @version                     1.0
// @description                 Administración de inventario: ítems, stock FIFO, daños, usuarios y exportaciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	// Cola de exportaciones: Redis si está configurado, si no en memoria.
	var jobs ports.JobQueue
	if cfg.Redis.Enabled() {
		rdb, err := queue.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		jobs = queue.NewRedisQueue(rdb, cfg.Redis.Queue)
		log.Info().Str("queue", cfg.Redis.Queue).Msg("cola de exportaciones en Redis")
	} else {
		mq := queue.NewMemoryQueue(256)
		defer mq.Close()
		jobs = mq
		log.Warn().Msg("REDIS_URL vacío: cola de exportaciones en memoria")
	}

	uploads, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de imágenes")
	}
	exportFiles, err := storage.NewLocalStore(cfg.Storage.ExportDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de exportaciones")
	}
	codes, err := idgen.New(cfg.App.NodeID)
	if err != nil {
		log.Fatal().Err(err).Msg("generador de códigos")
	}

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	damagedRepo := postgres.NewDamagedItemRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	exportRepo := postgres.NewExportNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	writers := []ports.TableWriter{csvfile.NewWriter(), spreadsheet.NewWriter(), infrapdf.NewTableWriter()}
	readers := map[string]ports.TableReader{
		"csv":        csvfile.NewReader(),
		"csv-latin1": csvfile.NewLatin1Reader(),
		"xlsx":       spreadsheet.NewReader(),
	}

	catalogUC := usecase.NewCatalogUseCase(txRunner, catalogRepo, itemRepo, activityRepo)
	itemUC := usecase.NewItemUseCase(txRunner, itemRepo, activityRepo, catalogUC, codes,
		imaging.NewProcessor(), uploads, infrapdf.NewLabelRenderer())
	stockUC := inventory.NewStockUseCase(txRunner, itemRepo, movementRepo, batchRepo, damagedRepo)
	authUC := auth.NewAuthUseCase(userRepo, activityRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	exportUC := export.NewExportUseCase(exportRepo, activityRepo, jobs, exportFiles)
	importer := export.NewImporter(itemUC, activityRepo, readers, log, writers...)

	// Sin SMTP el procesador no envía correos; se evita pasar un *Mailer nil como interfaz.
	var mailer ports.Mailer
	if m := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}); m != nil {
		mailer = m
	}
	processor := export.NewProcessor(exportRepo, userRepo, export.Sources{
		Items:     itemRepo,
		Movements: movementRepo,
		Damaged:   damagedRepo,
		Activity:  activityRepo,
	}, exportFiles, mailer, log, writers...)

	// Avisos pending de una ejecución anterior: con la cola en memoria su trabajo se perdió;
	// con Redis solo se cierran los que llevan más de staleExportAge sin procesarse.
	staleBefore := time.Now()
	if cfg.Redis.Enabled() {
		staleBefore = staleBefore.Add(-staleExportAge)
	}
	if n, err := exportUC.FailStale(ctx, staleBefore); err != nil {
		log.Error().Err(err).Msg("cerrar exportaciones pendientes")
	} else if n > 0 {
		log.Warn().Int("count", n).Msg("exportaciones pendientes marcadas como fallidas")
	}

	workers := worker.NewPool(jobs, processor, cfg.Export.Workers, log)
	workers.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		StockUC:     stockUC,
		CatalogUC:   catalogUC,
		UserUC:      usecase.NewUserUseCase(userRepo, activityRepo),
		ActivityUC:  usecase.NewActivityUseCase(activityRepo),
		ExportUC:    exportUC,
		Importer:    importer,
		DashboardUC: appanalytics.NewDashboardUseCase(analyticsRepo, activityRepo),
		Users:       userRepo,
		JWTSecret:   cfg.JWT.Secret,
		UploadDir:   uploads.Root(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	stop()
	workers.Wait()

	log.Info().Msg("aplicación detenida")
}
