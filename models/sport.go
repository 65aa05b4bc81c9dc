package models

// Sport is one of the five selectable tournament sports.
type Sport string

const (
	SportFootball    Sport = "football"
	SportVolleyball  Sport = "volleyball"
	SportBasketball  Sport = "basketball"
	SportTableTennis Sport = "table_tennis"
	SportTugOfWar    Sport = "tug_of_war"
)

func AllSports() []Sport {
	return []Sport{SportFootball, SportVolleyball, SportBasketball, SportTableTennis, SportTugOfWar}
}

func (s Sport) Valid() bool {
	switch s {
	case SportFootball, SportVolleyball, SportBasketball, SportTableTennis, SportTugOfWar:
		return true
	}
	return false
}

// AllowsGender reports whether a participant of the given gender may enter
// the sport. Football is male-only, volleyball female-only, the rest are
// unrestricted.
func (s Sport) AllowsGender(g Gender) bool {
	switch s {
	case SportFootball:
		return g == GenderMale
	case SportVolleyball:
		return g == GenderFemale
	}
	return true
}
