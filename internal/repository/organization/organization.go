package organization

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"github.com/jackc/pgx/v5"
)

type OrganizationDB struct {
	ID          string
	Name        string
	Plan        string
	AddOns      []string
	NotifyEmail string
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Organization, error) {
	query := `SELECT id, name, plan, add_ons, notify_email
		FROM organizations
		WHERE id = $1`

	var orgDB OrganizationDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&orgDB.ID,
			&orgDB.Name,
			&orgDB.Plan,
			&orgDB.AddOns,
			&orgDB.NotifyEmail,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("unexpected organization repository getbyid error: %w", err)
	}

	addOns := make([]entities.AddOnType, 0, len(orgDB.AddOns))
	for _, a := range orgDB.AddOns {
		addOns = append(addOns, entities.AddOnType(a))
	}

	return &entities.Organization{
		ID:          orgDB.ID,
		Name:        orgDB.Name,
		Plan:        entities.PlanType(orgDB.Plan),
		AddOns:      addOns,
		NotifyEmail: orgDB.NotifyEmail,
	}, nil
}

// ListInvitedCarriers приглашенные организацией перевозчики в порядке приглашения.
func (r *Repository) ListInvitedCarriers(ctx context.Context, ownerOrgID string) ([]string, error) {
	query := `
		SELECT carrier_id
		FROM invitations
		WHERE owner_org_id = $1
		ORDER BY position, carrier_id
	`

	rows, err := r.querier.Query(ctx, query, ownerOrgID)
	if err != nil {
		return nil, fmt.Errorf("unexpected organization repository list invited error: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 4)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unexpected organization repository list invited error: %w", err)
		}
		ids = append(ids, id)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected organization repository list invited error: %w", err)
	}

	return ids, nil
}
