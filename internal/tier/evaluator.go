package tier

import "marketplace_webapp/internal/domain"

// Counters are the inputs the tier decision table runs over.
type Counters struct {
	OwnedNFTs         int
	OwnedCurrency     float64
	DepositedCurrency float64
	MonthlyVolume     float64
}

// Evaluate computes the membership tier for a set of counters. Rules are
// checked from strictest to loosest; the first match wins.
func Evaluate(c Counters) domain.Tier {
	switch {
	case (c.MonthlyVolume >= 200000 && c.OwnedNFTs >= 50 && c.OwnedCurrency >= 60000) ||
		c.DepositedCurrency >= 125000:
		return domain.TierGrandee
	case (c.MonthlyVolume >= 50000 && c.OwnedNFTs >= 20 && c.OwnedCurrency >= 15000) ||
		c.OwnedCurrency >= 40000 ||
		c.DepositedCurrency >= 55000:
		return domain.TierMagnate
	case (c.MonthlyVolume >= 10000 && c.OwnedNFTs >= 12) ||
		c.OwnedCurrency >= 10000 ||
		c.DepositedCurrency >= 12500:
		return domain.TierTycoon
	case c.MonthlyVolume >= 5000 || c.OwnedNFTs >= 10 ||
		c.OwnedCurrency >= 2500 || c.DepositedCurrency >= 3000:
		return domain.TierMerchant
	case c.OwnedNFTs >= 3 || c.OwnedCurrency >= 300 || c.DepositedCurrency >= 400:
		return domain.TierRustic
	default:
		return domain.TierNewcomer
	}
}
