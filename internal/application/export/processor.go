package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/domain/repository"
	"github.com/jhoicas/inventory-admin/pkg/logger"
)

// finalizeTimeout plazo para guardar el estado final del aviso cuando ctx ya fue cancelado.
const finalizeTimeout = 10 * time.Second

// Processor genera el archivo de un trabajo de exportación y cierra su aviso.
type Processor struct {
	exports repository.ExportNotificationRepository
	users   repository.UserRepository
	sources Sources
	writers map[string]ports.TableWriter
	files   ports.FileStore
	mailer  ports.Mailer // nil: correo deshabilitado
	log     *logger.Logger
	now     func() time.Time
}

// NewProcessor construye el procesador; los writers se indexan por Extension().
func NewProcessor(
	exports repository.ExportNotificationRepository,
	users repository.UserRepository,
	sources Sources,
	files ports.FileStore,
	mailer ports.Mailer,
	log *logger.Logger,
	writers ...ports.TableWriter,
) *Processor {
	byFormat := make(map[string]ports.TableWriter, len(writers))
	for _, w := range writers {
		byFormat[w.Extension()] = w
	}
	return &Processor{
		exports: exports,
		users:   users,
		sources: sources,
		writers: byFormat,
		files:   files,
		mailer:  mailer,
		log:     log.Named("export"),
		now:     time.Now,
	}
}

// Handle procesa un mensaje de la cola. Solo devuelve error si no pudo guardar el estado
// final del aviso; los fallos de generación quedan en el aviso como failed.
func (p *Processor) Handle(ctx context.Context, payload []byte) error {
	job, err := DecodeJob(payload)
	if err != nil {
		p.log.Error().Err(err).Msg("trabajo de exportación descartado")
		return nil
	}
	n, err := p.exports.GetByID(ctx, job.NotificationID)
	if err != nil {
		return err
	}
	if n == nil || n.Status != entity.ExportPending {
		p.log.Warn().Str("export_id", job.NotificationID).Msg("aviso inexistente o ya procesado")
		return nil
	}

	start := p.now()
	genErr := p.generate(ctx, n)
	done := p.now()
	n.CompletedAt = &done
	if genErr != nil {
		n.Status = entity.ExportFailed
		n.ErrorMessage = genErr.Error()
		if ctx.Err() != nil {
			n.ErrorMessage = MsgInterrupted
		}
		p.log.Error().Err(genErr).
			Str("export_id", n.ID).Str("type", n.ExportType).Str("format", n.Format).
			Msg("exportación fallida")
	} else {
		n.Status = entity.ExportCompleted
		p.log.Info().
			Str("export_id", n.ID).Str("type", n.ExportType).Str("format", n.Format).
			Int64("bytes", n.FileSize).Dur("took", done.Sub(start)).
			Msg("exportación completada")
	}
	// En el apagado ctx llega cancelado; el aviso se cierra igual para no quedar pending.
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()
	if err := p.exports.Complete(fctx, n); err != nil {
		return fmt.Errorf("guardar aviso %s: %w", n.ID, err)
	}
	p.notify(fctx, n)
	return nil
}

func (p *Processor) generate(ctx context.Context, n *entity.ExportNotification) error {
	w, ok := p.writers[n.Format]
	if !ok {
		return fmt.Errorf("formato no soportado: %s", n.Format)
	}
	var f dto.ExportFilters
	if len(n.Filters) > 0 {
		if err := json.Unmarshal(n.Filters, &f); err != nil {
			return fmt.Errorf("filtros inválidos: %w", err)
		}
	}
	table, err := p.sources.BuildTable(ctx, n.ExportType, f, p.now())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := w.Write(&buf, table); err != nil {
		return fmt.Errorf("escribir %s: %w", n.Format, err)
	}
	n.FilePath = n.ID + "." + w.Extension()
	n.FileName = fmt.Sprintf("%s_%s.%s", n.ExportType, n.CreatedAt.Format("20060102_150405"), w.Extension())
	size, err := p.files.Save(ctx, n.FilePath, &buf)
	if err != nil {
		n.FilePath = ""
		return fmt.Errorf("guardar archivo: %w", err)
	}
	n.FileSize = size
	return nil
}

// notify avisa por correo; un fallo de envío solo se registra en el log.
func (p *Processor) notify(ctx context.Context, n *entity.ExportNotification) {
	if p.mailer == nil {
		return
	}
	u, err := p.users.GetByID(ctx, n.UserID)
	if err != nil || u == nil || u.Email == "" {
		return
	}
	subject := "Tu exportación está lista"
	body := fmt.Sprintf("<p>Hola %s,</p><p>La exportación <b>%s</b> (%s) está disponible en el panel de notificaciones.</p>",
		u.FirstName, n.ExportType, n.Format)
	if n.Status == entity.ExportFailed {
		subject = "Tu exportación falló"
		body = fmt.Sprintf("<p>Hola %s,</p><p>La exportación <b>%s</b> (%s) no pudo generarse: %s</p>",
			u.FirstName, n.ExportType, n.Format, n.ErrorMessage)
	}
	if err := p.mailer.Send(ctx, u.Email, subject, body); err != nil {
		p.log.Warn().Err(err).Str("export_id", n.ID).Str("to", u.Email).Msg("no se pudo enviar el correo")
	}
}
