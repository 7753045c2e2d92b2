package entitlement

import (
	"strings"

	"dispatch/internal/entities"
)

var planFeatures = map[entities.PlanType][]entities.FeatureType{
	entities.PlanIndustryBase: {
		entities.FeatureVigilanceModule,
		entities.FeatureCarrierAdd,
		entities.FeaturePlanningAutomation,
		entities.FeaturePricingGrids,
		entities.FeatureIndustryDispatch,
	},
	entities.PlanTransporterBase: {
		entities.FeatureVigilanceModule,
		entities.FeaturePlanningAutomation,
		entities.FeatureIndustryDispatch,
	},
}

var addOnFeatures = map[entities.AddOnType][]entities.FeatureType{
	entities.AddOnAffretIA:           {entities.FeatureAffretIAIntegration},
	entities.AddOnPremiumMarketplace: {entities.FeatureMarketplaceAccess},
}

// Features возвращает множество функций плана с учётом дополнений.
// Неизвестные планы и дополнения ничего не дают.
func Features(plan entities.PlanType, addOns []entities.AddOnType) map[entities.FeatureType]struct{} {
	out := make(map[entities.FeatureType]struct{})

	for _, f := range planFeatures[entities.PlanType(strings.ToUpper(string(plan)))] {
		out[f] = struct{}{}
	}
	for _, a := range addOns {
		for _, f := range addOnFeatures[entities.AddOnType(strings.ToUpper(string(a)))] {
			out[f] = struct{}{}
		}
	}

	return out
}

func HasFeature(org *entities.Organization, feature entities.FeatureType) bool {
	if org == nil {
		return false
	}
	_, ok := Features(org.Plan, org.AddOns)[feature]
	return ok
}

// HasFeatureWithContext дополнительно выдаёт функцию приглашённому перевозчику,
// если она есть у организации-владельца.
func HasFeatureWithContext(actor *entities.Organization, feature entities.FeatureType, fc entities.FeatureContext) bool {
	if HasFeature(actor, feature) {
		return true
	}
	if fc.Relation == entities.RelationInvitedCarrier && fc.OwnerOrg != nil {
		return HasFeature(fc.OwnerOrg, feature)
	}
	return false
}
