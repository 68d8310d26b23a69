package models

// ReferralSource is the closed set of channels the quote form offers for
// "how did you hear about us".
type ReferralSource string

const (
	ReferralArchitect          ReferralSource = "architect"
	ReferralArcAgency          ReferralSource = "arc-agency"
	ReferralArchipro           ReferralSource = "archipro"
	ReferralBuilder            ReferralSource = "builder"
	ReferralBuiltEnvironment   ReferralSource = "built-environment"
	ReferralBuildingDesignQLD  ReferralSource = "building-design-qld"
	ReferralGoogle             ReferralSource = "google"
	ReferralMailOut            ReferralSource = "mail-out"
	ReferralReferral           ReferralSource = "referral"
	ReferralInfoPack           ReferralSource = "info-pack"
	ReferralSpecifyingDynamics ReferralSource = "specifying-dynamics"
	ReferralMagazine           ReferralSource = "magazine"
	ReferralTheBlock           ReferralSource = "the-block"
	ReferralSocialMedia        ReferralSource = "social-media"
	ReferralLocalProject       ReferralSource = "local-project"
	ReferralTradeShow          ReferralSource = "trade-show"
)

// ReferralSources lists all valid values in display order.
var ReferralSources = []ReferralSource{
	ReferralArchitect,
	ReferralArcAgency,
	ReferralArchipro,
	ReferralBuilder,
	ReferralBuiltEnvironment,
	ReferralBuildingDesignQLD,
	ReferralGoogle,
	ReferralMailOut,
	ReferralReferral,
	ReferralInfoPack,
	ReferralSpecifyingDynamics,
	ReferralMagazine,
	ReferralTheBlock,
	ReferralSocialMedia,
	ReferralLocalProject,
	ReferralTradeShow,
}

var referralSourceSet = func() map[ReferralSource]bool {
	m := make(map[ReferralSource]bool, len(ReferralSources))
	for _, s := range ReferralSources {
		m[s] = true
	}
	return m
}()

func (s ReferralSource) Valid() bool {
	return referralSourceSet[s]
}
