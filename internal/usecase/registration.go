package usecase

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/mitaka/regintake/internal/domain"
)

var tracer = otel.Tracer("usecase")

type RegistrationUsecase struct {
	repo RegistrationRepository
}

func NewRegistrationUsecase(repo RegistrationRepository) *RegistrationUsecase {
	return &RegistrationUsecase{repo: repo}
}

// Register appends one submission to the collection. The store assigns
// id and registrationDate; the submitted fields are kept verbatim.
func (uc *RegistrationUsecase) Register(ctx context.Context, fields map[string]string) (domain.Registration, error) {
	ctx, span := tracer.Start(ctx, "Registration.Usecase.Register")
	defer span.End()

	reg, err := uc.repo.Append(ctx, fields)
	if err != nil {
		span.RecordError(err)
		return domain.Registration{}, err
	}
	return reg, nil
}

// List returns the full collection in insertion order.
func (uc *RegistrationUsecase) List(ctx context.Context) (domain.Collection, error) {
	ctx, span := tracer.Start(ctx, "Registration.Usecase.List")
	defer span.End()

	regs, err := uc.repo.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return regs, nil
}
