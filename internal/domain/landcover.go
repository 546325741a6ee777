package domain

import (
	"fmt"
	"strings"
)

// LandCover is the terrain classification of the area. The zero value is
// not a valid land cover.
type LandCover int

const (
	LandCoverUrban LandCover = iota + 1
	LandCoverIndustrial
	LandCoverGreenSpace
	LandCoverWater
)

// LandCovers returns the selectable land covers in form order.
func LandCovers() []LandCover {
	return []LandCover{LandCoverUrban, LandCoverIndustrial, LandCoverGreenSpace, LandCoverWater}
}

// String returns the display label, which is also the suffix of the
// one-hot column name used at training time.
func (l LandCover) String() string {
	switch l {
	case LandCoverUrban:
		return "Urban"
	case LandCoverIndustrial:
		return "Industrial"
	case LandCoverGreenSpace:
		return "Green Space"
	case LandCoverWater:
		return "Water"
	default:
		return fmt.Sprintf("LandCover(%d)", int(l))
	}
}

// Valid reports whether l is one of the four known land covers.
func (l LandCover) Valid() bool {
	switch l {
	case LandCoverUrban, LandCoverIndustrial, LandCoverGreenSpace, LandCoverWater:
		return true
	default:
		return false
	}
}

// ParseLandCover maps a label to a LandCover. Matching ignores case and
// surrounding whitespace, and accepts "GreenSpace" and "green_space" for
// the two-word label.
func ParseLandCover(s string) (LandCover, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "urban":
		return LandCoverUrban, nil
	case "industrial":
		return LandCoverIndustrial, nil
	case "greenspace":
		return LandCoverGreenSpace, nil
	case "water":
		return LandCoverWater, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLandCover, s)
	}
}

// MarshalText encodes the display label.
func (l LandCover) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLandCover, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText accepts any label ParseLandCover accepts.
func (l *LandCover) UnmarshalText(text []byte) error {
	parsed, err := ParseLandCover(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
