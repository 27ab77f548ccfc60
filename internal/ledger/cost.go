package ledger

import "github.com/seedbed/trellis/internal/models"

// seasonBase is the soil cost of each season in a fertile environment.
// Longer seasons cost more.
var seasonBase = map[models.Season]int{
	models.SeasonOneWeek:     5,
	models.SeasonTwoWeeks:    8,
	models.SeasonOneMonth:    13,
	models.SeasonThreeMonths: 21,
	models.SeasonSixMonths:   34,
	models.SeasonOneYear:     55,
}

// envFactor scales the base cost by environment harshness, expressed as
// a rational (num/den) so costs stay integral.
var envFactor = map[models.Environment][2]int{
	models.EnvFertile: {2, 2}, // ×1.0
	models.EnvFirm:    {3, 2}, // ×1.5
	models.EnvBarren:  {4, 2}, // ×2.0
}

// CostOf returns the soil cost of grafting a sprout with the given
// season and environment. It is total over the valid enumerations and
// monotonic in both season length and environment harshness; fractional
// products round up. Unknown members cost 0 — validity is the lifecycle
// engine's concern.
func CostOf(season models.Season, env models.Environment) int {
	base, ok := seasonBase[season]
	if !ok {
		return 0
	}
	f, ok := envFactor[env]
	if !ok {
		return 0
	}
	num, den := f[0], f[1]
	return (base*num + den - 1) / den
}
