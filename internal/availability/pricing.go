package availability

import (
	"time"

	"villa/internal/shared/dates"
)

// PriceForRange sums the nightly rate of every night of the stay. The night of end is not
// charged. Each night takes the price of the first season, in list order, that contains it,
// falling back to defaultPrice. A zero-night stay costs 0.
func PriceForRange(start, end time.Time, defaultPrice float64, seasonalPrices []SeasonalPrice) float64 {
	var total float64
	for _, night := range NightlyRates(start, end, defaultPrice, seasonalPrices) {
		total += night.Price
	}
	return total
}

// NightlyRates breaks a stay down into its priced nights.
func NightlyRates(start, end time.Time, defaultPrice float64, seasonalPrices []SeasonalPrice) []NightlyRate {
	nights := dates.Nights(start, end)
	if nights == 0 {
		return nil
	}

	seasons := parseSeasons(seasonalPrices)
	rates := make([]NightlyRate, 0, nights)
	night := dates.Truncate(start)
	for i := 0; i < nights; i++ {
		rate := NightlyRate{Date: dates.Format(night), Price: defaultPrice}
		for _, s := range seasons {
			if !night.Before(s.start) && !night.After(s.end) {
				rate.Price = s.price
				rate.Season = s.name
				break
			}
		}
		rates = append(rates, rate)
		night = night.AddDate(0, 0, 1)
	}
	return rates
}

// parseSeasons keeps list order; entries with unparsable dates can never match a night
func parseSeasons(seasonalPrices []SeasonalPrice) []season {
	out := make([]season, 0, len(seasonalPrices))
	for _, sp := range seasonalPrices {
		start, err := dates.Parse(sp.StartDate)
		if err != nil {
			continue
		}
		end, err := dates.Parse(sp.EndDate)
		if err != nil {
			continue
		}
		out = append(out, season{name: sp.Name, start: start, end: end, price: sp.Price})
	}
	return out
}
