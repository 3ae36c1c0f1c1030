package astro

// AspectType classifies the angular relationship between two bodies.
type AspectType string

const (
	Conjunction AspectType = "conjunction"
	Sextile     AspectType = "sextile"
	Square      AspectType = "square"
	Trine       AspectType = "trine"
	Opposition  AspectType = "opposition"

	// Minor aspects, only matched when explicitly requested.
	SemiSextile    AspectType = "semi-sextile"
	SemiSquare     AspectType = "semi-square"
	Sesquiquadrate AspectType = "sesquiquadrate"
	Quincunx       AspectType = "quincunx"
)

// Angle returns the exact separation for this aspect, in degrees.
func (a AspectType) Angle() float64 {
	switch a {
	case Conjunction:
		return 0
	case SemiSextile:
		return 30
	case SemiSquare:
		return 45
	case Sextile:
		return 60
	case Square:
		return 90
	case Trine:
		return 120
	case Sesquiquadrate:
		return 135
	case Quincunx:
		return 150
	case Opposition:
		return 180
	}
	return 0
}

// DefaultOrb returns the matching tolerance for this aspect, in degrees.
func (a AspectType) DefaultOrb() float64 {
	switch a {
	case Conjunction, Opposition, Trine:
		return 8
	case Square:
		return 7
	case Sextile:
		return 6
	case Quincunx:
		return 3
	default:
		return 2
	}
}

// IsMajor reports whether this is one of the five Ptolemaic aspects.
func (a AspectType) IsMajor() bool {
	switch a {
	case Conjunction, Sextile, Square, Trine, Opposition:
		return true
	}
	return false
}

// MajorAspects lists the five major aspects in angle order.
func MajorAspects() []AspectType {
	return []AspectType{Conjunction, Sextile, Square, Trine, Opposition}
}

// AllAspects lists major and minor aspects in angle order.
func AllAspects() []AspectType {
	return []AspectType{
		Conjunction, SemiSextile, SemiSquare, Sextile, Square,
		Trine, Sesquiquadrate, Quincunx, Opposition,
	}
}

// FindAspect checks whether two ecliptic longitudes form an aspect within
// its default orb. It returns the first matching aspect in angle order and
// the orb (distance from exact), or ok=false when none match.
func FindAspect(longitude1, longitude2 float64, includeMinor bool) (AspectType, float64, bool) {
	aspects := MajorAspects()
	if includeMinor {
		aspects = AllAspects()
	}

	separation := AngularDistance(longitude1, longitude2)

	for _, aspect := range aspects {
		orb := separation - aspect.Angle()
		if orb < 0 {
			orb = -orb
		}
		if orb <= aspect.DefaultOrb() {
			return aspect, orb, true
		}
	}
	return "", 0, false
}

// Aspect is a matched aspect between a moving body and a natal body.
type Aspect struct {
	NatalBody  string     `json:"natal_planet"`
	AspectType AspectType `json:"aspect_type"`
	// Orb is the distance from exact, in degrees.
	Orb float64 `json:"orb"`
	// IsExact marks aspects within one degree of exact.
	IsExact bool `json:"is_exact"`
}

// NewAspect builds an Aspect, deriving the exactness flag from the orb.
func NewAspect(natalBody string, aspectType AspectType, orb float64) Aspect {
	return Aspect{
		NatalBody:  natalBody,
		AspectType: aspectType,
		Orb:        orb,
		IsExact:    orb < 1,
	}
}
