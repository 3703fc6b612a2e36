package animals

import "time"

// AgeYears calcula años cumplidos entre birth y asOf con redondeo
// calendario: si el mes/día de asOf es anterior al de nacimiento, todavía
// no cumplió y se resta un año. ok=false cuando no hay fecha de nacimiento.
func AgeYears(birth *time.Time, asOf time.Time) (years int, ok bool) {
	if birth == nil {
		return 0, false
	}
	years = asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() ||
		(asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		years--
	}
	return years, true
}
