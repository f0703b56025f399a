package mileage

import "strings"

// estimate guesses a distance from address text alone. It is deliberately
// crude: the buckets only need to look plausible on a dashboard until a real
// lookup lands.
//
// Identical addresses are zero. Same city gets a short hop, same state a
// regional drive, anything else a long haul, each drawn uniformly from the
// bucket's range.
func (e *Estimator) estimate(origin, destination string) float64 {

	if normalizeAddress(origin) == normalizeAddress(destination) {
		return 0
	}

	oCity, oState := cityState(origin)
	dCity, dState := cityState(destination)

	switch {
	case oCity != "" && oCity == dCity:
		return 2 + e.rand()*10 // 2–12 miles
	case oState != "" && oState == dState:
		return 20 + e.rand()*80 // 20–100 miles
	default:
		return 50 + e.rand()*300 // 50–350 miles
	}
}

func normalizeAddress(addr string) string {
	return strings.ToLower(strings.Join(strings.Fields(addr), " "))
}

// cityState pulls the city and state tokens out of an address by naive
// comma-splitting from the right: "123 Main St, Austin, TX" -> ("austin", "tx").
func cityState(addr string) (city, state string) {

	parts := strings.Split(addr, ",")
	if len(parts) >= 1 {
		state = strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	}
	if len(parts) >= 2 {
		city = strings.ToLower(strings.TrimSpace(parts[len(parts)-2]))
	}

	return city, state
}
