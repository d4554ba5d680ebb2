package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ExportUsecase projects the current collection into the export
// artifacts. Refreshes are serialized so a timer-triggered run never
// interleaves file writes with an append-triggered one.
type ExportUsecase struct {
	mu      sync.Mutex
	repo    RegistrationRepository
	writers []ArtifactWriter
}

func NewExportUsecase(repo RegistrationRepository, writers ...ArtifactWriter) *ExportUsecase {
	return &ExportUsecase{repo: repo, writers: writers}
}

// Refresh regenerates every artifact from the current collection. Both
// outcomes are logged here; callers are expected to ignore the returned
// error, since export freshness never decides the fate of an append.
func (uc *ExportUsecase) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Export.Usecase.Refresh")
	defer span.End()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	regs, err := uc.repo.Load(ctx)
	if err != nil {
		span.RecordError(err)
		slog.Error("export refresh failed",
			slog.String("error", err.Error()),
			slog.String("module", "export"),
		)
		return err
	}

	for _, w := range uc.writers {
		if err := w.Write(ctx, regs); err != nil {
			span.RecordError(err)
			slog.Error("export refresh failed",
				slog.String("artifact", w.Name()),
				slog.String("error", err.Error()),
				slog.String("module", "export"),
			)
			return err
		}
	}

	slog.Info("exports refreshed",
		slog.Int("records", len(regs)),
		slog.String("at", time.Now().UTC().Format(time.RFC3339)),
		slog.String("module", "export"),
	)
	return nil
}
