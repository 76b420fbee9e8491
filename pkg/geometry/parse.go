package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseGroundPoint reads a ground position written as "x,z". The result lies on
// the Y=0 plane.
func ParseGroundPoint(s string) (Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Vector3{}, fmt.Errorf("invalid ground point %q: expected x,z", s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Vector3{}, fmt.Errorf("invalid ground point %q: %w", s, err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Vector3{}, fmt.Errorf("invalid ground point %q: %w", s, err)
	}
	return NewVector3(x, 0, z), nil
}
