package domain

// BadgeTier is the badge earned for a module score.
type BadgeTier string

const (
	TierNone   BadgeTier = "none"
	TierBronze BadgeTier = "bronze"
	TierSilver BadgeTier = "silver"
	TierGold   BadgeTier = "gold"
)

// Unlock thresholds. These are the single definition site; call sites must
// not repeat the literals.
const (
	BronzeThresholdPercent = 60
	SilverThresholdPercent = 75
	GoldThresholdPercent   = 90

	// CertificateModuleCount is the number of completed modules required for
	// the certificate.
	CertificateModuleCount = 3
	// CertificateAveragePercent is the overall average required for the
	// certificate.
	CertificateAveragePercent = 60
)

// Tier maps a module percent to its badge tier.
func Tier(percent int) BadgeTier {
	switch {
	case percent >= GoldThresholdPercent:
		return TierGold
	case percent >= SilverThresholdPercent:
		return TierSilver
	case percent >= BronzeThresholdPercent:
		return TierBronze
	default:
		return TierNone
	}
}

// BadgeUnlocked reports whether a module percent earns any badge.
func BadgeUnlocked(percent int) bool {
	return percent >= BronzeThresholdPercent
}

// CertificateUnlocked requires both enough completed modules and a
// sufficient overall average; meeting one without the other is not enough.
func CertificateUnlocked(completedModuleCount, overallAveragePercent int) bool {
	return completedModuleCount >= CertificateModuleCount &&
		overallAveragePercent >= CertificateAveragePercent
}
