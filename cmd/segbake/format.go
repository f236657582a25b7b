package main

import (
	"fmt"
	"strings"

	"segbake/internal/spatial"
)

var axisNames = [3]string{"X", "Y", "Z"}

func axisName(axis int) string {
	if axis < 0 || axis >= len(axisNames) {
		return fmt.Sprintf("%d", axis)
	}
	return axisNames[axis]
}

func formatVec(v spatial.Vec3) string {
	return fmt.Sprintf("%s, %s, %s", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

// formatFloat trims trailing zeros so unit scales print as "1" and angles
// as "180" rather than "1.0000".
func formatFloat(value float64) string {
	s := fmt.Sprintf("%.4f", value)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}
