package assessment

import "math/rand"

// DefaultSkills is the catalog offered on the skill selection screen.
var DefaultSkills = []string{"Java", "C++", "Python", "JavaScript"}

// RandomSkills picks two or three distinct skills from catalog for a
// generated assessment. Smaller catalogs are returned whole, shuffled.
func RandomSkills(catalog []string, rng *rand.Rand) []string {
	shuffled := make([]string, len(catalog))
	copy(shuffled, catalog)

	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := 2 + rng.Intn(2)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
