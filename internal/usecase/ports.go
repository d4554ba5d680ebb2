package usecase

import (
	"context"

	"github.com/mitaka/regintake/internal/domain"
)

// RegistrationRepository defines storage operations for the collection.
type RegistrationRepository interface {
	Load(ctx context.Context) (domain.Collection, error)
	Append(ctx context.Context, fields map[string]string) (domain.Registration, error)
}

// ArtifactWriter regenerates one export artifact from the collection.
type ArtifactWriter interface {
	Name() string
	Write(ctx context.Context, regs domain.Collection) error
}
