package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/rfm/internal/config"
)

func TestTiers(t *testing.T) {
	th := config.Default().Thresholds

	recency := map[int]int{0: 1, 21: 1, 22: 2, 105: 2, 106: 3, 400: 3}
	for days, want := range recency {
		assert.Equal(t, want, RecencyTier(days, th), "days %d", days)
	}

	frequency := map[int]int{2: 2, 93: 2, 94: 1}
	for n, want := range frequency {
		assert.Equal(t, want, FrequencyTier(n, th), "count %d", n)
	}

	monetary := map[float64]int{10: 2, 418: 2, 418.01: 1, 750: 1}
	for sum, want := range monetary {
		assert.Equal(t, want, MonetaryTier(sum, th), "sum %v", sum)
	}
}

func TestTiers_CustomThresholds(t *testing.T) {
	th := config.ThresholdsConfig{RecencyDaysActive: 7, RecencyDaysLapsing: 30, FrequencyPurchases: 5, MonetaryValue: 100}
	assert.Equal(t, 2, RecencyTier(8, th))
	assert.Equal(t, 3, RecencyTier(31, th))
	assert.Equal(t, 1, FrequencyTier(6, th))
	assert.Equal(t, 1, MonetaryTier(100.5, th))
}
