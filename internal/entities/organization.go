package entities

type Organization struct {
	ID          string
	Name        string
	Plan        PlanType
	AddOns      []AddOnType
	NotifyEmail string
}

type PlanType string

const (
	PlanIndustryBase    PlanType = "INDUSTRY_BASE"
	PlanTransporterBase PlanType = "TRANSPORTER_BASE"
)

type AddOnType string

const (
	AddOnAffretIA           AddOnType = "AFFRET_IA"
	AddOnPremiumMarketplace AddOnType = "PREMIUM_MARKETPLACE"
)

type FeatureType string

const (
	FeatureVigilanceModule     FeatureType = "vigilance.module"
	FeatureCarrierAdd          FeatureType = "carrier.add"
	FeaturePlanningAutomation  FeatureType = "planning.automation"
	FeaturePricingGrids        FeatureType = "pricing.grids"
	FeatureIndustryDispatch    FeatureType = "industry.dispatch"
	FeatureAffretIAIntegration FeatureType = "affretia.integration"
	FeatureMarketplaceAccess   FeatureType = "marketplace.access"
)

func (f FeatureType) String() string {
	return string(f)
}

type RelationType string

const (
	RelationNone           RelationType = ""
	RelationInvitedCarrier RelationType = "INVITED_CARRIER"
)

type FeatureContext struct {
	OwnerOrg *Organization
	Relation RelationType
}
