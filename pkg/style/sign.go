package style

import (
	"github.com/fatih/color"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

func SignString(v fixedpoint.Value) string {
	if v.Sign() > 0 {
		return "+" + v.String()
	}
	return v.String()
}

// SignColorString colors positive values green and negative values red.
func SignColorString(v fixedpoint.Value) string {
	switch v.Sign() {
	case 1:
		return color.GreenString("%s", SignString(v))
	case -1:
		return color.RedString("%s", SignString(v))
	}
	return v.String()
}
