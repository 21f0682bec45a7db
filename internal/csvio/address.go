package csvio

import "strings"

// ParseAddress splits a single unstructured address string into city,
// state, and zip. The second-to-last comma part is taken as the city
// and the last as a "state zip" pair split on whitespace. Best effort
// and intentionally lossy: anything with fewer than 3 comma parts, or a
// trailing segment with fewer than 2 whitespace tokens, yields empty
// strings for all three outputs.
func ParseAddress(address string) (city, state, zip string) {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < 3 {
		return "", "", ""
	}

	city = parts[len(parts)-2]
	stateZip := strings.Fields(parts[len(parts)-1])
	if len(stateZip) < 2 {
		return "", "", ""
	}

	return city, stateZip[0], stateZip[len(stateZip)-1]
}
