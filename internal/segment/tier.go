package segment

import "github.com/cleared-dev/rfm/internal/config"

// RecencyTier is X: 1 for active customers, 2 for lapsing, 3 for the rest.
func RecencyTier(days int, t config.ThresholdsConfig) int {
	switch {
	case days <= t.RecencyDaysActive:
		return 1
	case days <= t.RecencyDaysLapsing:
		return 2
	default:
		return 3
	}
}

// FrequencyTier is Y: 1 above the purchase threshold, else 2.
func FrequencyTier(count int, t config.ThresholdsConfig) int {
	if count > t.FrequencyPurchases {
		return 1
	}
	return 2
}

// MonetaryTier is Z: 1 above the value threshold, else 2.
func MonetaryTier(sum float64, t config.ThresholdsConfig) int {
	if sum > t.MonetaryValue {
		return 1
	}
	return 2
}
