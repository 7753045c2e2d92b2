package carrier

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"github.com/jackc/pgx/v5"
)

type CarrierDB struct {
	ID               string
	Name             string
	Email            string
	Premium          bool
	QualityScore     *float64
	ComplianceStatus string
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Carrier, error) {
	query := `SELECT id, name, email, premium, quality_score, compliance_status
		FROM carriers
		WHERE id = $1`

	var carrierDB CarrierDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&carrierDB.ID,
			&carrierDB.Name,
			&carrierDB.Email,
			&carrierDB.Premium,
			&carrierDB.QualityScore,
			&carrierDB.ComplianceStatus,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrCarrierNotFound
		}

		return nil, fmt.Errorf("unexpected carrier repository getbyid error: %w", err)
	}

	return &entities.Carrier{
		ID:             carrierDB.ID,
		Name:           carrierDB.Name,
		Email:          carrierDB.Email,
		Premium:        carrierDB.Premium,
		QualityScore:   carrierDB.QualityScore,
		SeedCompliance: entities.ParseComplianceStatus(carrierDB.ComplianceStatus),
	}, nil
}

// ListIDs весь реестр перевозчиков, используется как цепочка по умолчанию.
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.querier.Query(ctx, `SELECT id FROM carriers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("unexpected carrier repository list ids error: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unexpected carrier repository list ids error: %w", err)
		}
		ids = append(ids, id)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected carrier repository list ids error: %w", err)
	}

	return ids, nil
}
