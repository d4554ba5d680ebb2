package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mitaka/regintake/internal/domain"
	"github.com/mitaka/regintake/internal/infra/database/models"
)

// PostgresRegistrationRepository is the gorm-backed store. The count
// and the insert run inside one transaction so the count+1 identity
// rule holds without a separate counter.
type PostgresRegistrationRepository struct {
	db *gorm.DB
}

func NewPostgresRegistrationRepository(db *gorm.DB) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{db: db}
}

func (r *PostgresRegistrationRepository) Load(ctx context.Context) (domain.Collection, error) {
	var rows []models.Registration
	err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error
	if err != nil {
		return nil, domain.StorageError{Op: "load", Err: errors.Wrap(err, "selecting registrations")}
	}

	regs := make(domain.Collection, 0, len(rows))
	for _, row := range rows {
		reg, err := fromModel(row)
		if err != nil {
			return nil, domain.StorageError{Op: "load", Err: err}
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

func (r *PostgresRegistrationRepository) Append(ctx context.Context, fields map[string]string) (domain.Registration, error) {
	if fields == nil {
		fields = map[string]string{}
	}

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return domain.Registration{}, domain.StorageError{Op: "append", Err: err}
	}

	now := time.Now().UTC()
	var row models.Registration

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Registration{}).Count(&count).Error; err != nil {
			return errors.Wrap(err, "counting registrations")
		}

		row = models.Registration{
			ID:               int(count) + 1,
			Fields:           string(fieldsJSON),
			RegistrationDate: now,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return domain.Registration{}, domain.StorageError{Op: "append", Err: err}
	}

	return domain.Registration{
		ID:               row.ID,
		RegistrationDate: now.Format(time.RFC3339),
		Fields:           fields,
	}, nil
}

func fromModel(row models.Registration) (domain.Registration, error) {
	fields := map[string]string{}
	if row.Fields != "" {
		if err := json.Unmarshal([]byte(row.Fields), &fields); err != nil {
			return domain.Registration{}, errors.Wrap(err, "decoding registration fields")
		}
	}
	return domain.Registration{
		ID:               row.ID,
		RegistrationDate: row.RegistrationDate.UTC().Format(time.RFC3339),
		Fields:           fields,
	}, nil
}
