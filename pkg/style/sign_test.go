package style

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/c9s/cyclekit/pkg/fixedpoint"
)

func TestSignString(t *testing.T) {
	assert.Equal(t, "+1", SignString(fixedpoint.One))
	assert.Equal(t, "-1", SignString(fixedpoint.One.Neg()))
	assert.Equal(t, "0", SignString(fixedpoint.Zero))
}

func TestSignColorString(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	assert.Equal(t, "+2", SignColorString(fixedpoint.Two))
	assert.Equal(t, "-2", SignColorString(fixedpoint.Two.Neg()))
	assert.Equal(t, "0", SignColorString(fixedpoint.Zero))
}
