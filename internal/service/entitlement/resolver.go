package entitlement

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"dispatch/internal/entities"
)

// Resolver отвечает на вопросы о правах по идентификатору организации.
type Resolver struct {
	organizations OrganizationRepository
	invitations   InvitationRepository
}

func NewResolver(organizations OrganizationRepository, invitations InvitationRepository) *Resolver {
	return &Resolver{
		organizations: organizations,
		invitations:   invitations,
	}
}

// HasFeature: организация, которой нет в справочнике, не имеет ни одной функции.
func (r *Resolver) HasFeature(ctx context.Context, orgID string, feature entities.FeatureType) (bool, error) {
	if strings.TrimSpace(orgID) == "" {
		return false, ErrInvalidOrganizationID
	}

	org, err := r.lookup(ctx, orgID)
	if err != nil {
		return false, err
	}

	return HasFeature(org, feature), nil
}

// HasFeatureWithContext проверяет функцию у actorOrgID в контексте заказа организации ownerOrgID.
// Перевозчик, приглашенный владельцем, получает функцию владельца.
func (r *Resolver) HasFeatureWithContext(
	ctx context.Context,
	actorOrgID string,
	feature entities.FeatureType,
	ownerOrgID string,
) (bool, error) {
	allowed, err := r.HasFeature(ctx, actorOrgID, feature)
	if err != nil || allowed {
		return allowed, err
	}
	if ownerOrgID == "" || ownerOrgID == actorOrgID {
		return false, nil
	}

	relation, err := r.Relation(ctx, actorOrgID, ownerOrgID)
	if err != nil {
		return false, err
	}
	if relation == entities.RelationNone {
		return false, nil
	}

	owner, err := r.lookup(ctx, ownerOrgID)
	if err != nil {
		return false, err
	}

	return HasFeatureWithContext(nil, feature, entities.FeatureContext{
		OwnerOrg: owner,
		Relation: relation,
	}), nil
}

// Relation отношение actorOrgID к организации ownerOrgID.
func (r *Resolver) Relation(ctx context.Context, actorOrgID, ownerOrgID string) (entities.RelationType, error) {
	invited, err := r.invitations.ListInvitedCarriers(ctx, ownerOrgID)
	if err != nil {
		return entities.RelationNone, fmt.Errorf("list invited carriers of %s: %w", ownerOrgID, err)
	}
	if slices.Contains(invited, actorOrgID) {
		return entities.RelationInvitedCarrier, nil
	}
	return entities.RelationNone, nil
}

func (r *Resolver) lookup(ctx context.Context, orgID string) (*entities.Organization, error) {
	org, err := r.organizations.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization %s: %w", orgID, err)
	}
	return org, nil
}
