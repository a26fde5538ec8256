package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellDefaults(t *testing.T) {
	c := Cell{X: 1, Y: 1}
	assert.False(t, c.Hazard)
	assert.False(t, c.Revealed)
	assert.Equal(t, 0, c.AdjacentCount)
}

func TestCellRender(t *testing.T) {
	tests := []struct {
		name  string
		cell  Cell
		debug bool
		want  string
	}{
		{name: "hidden", cell: Cell{}, want: "*"},
		{name: "hidden black hole", cell: Cell{Hazard: true}, want: "*"},
		{name: "hidden numbered", cell: Cell{AdjacentCount: 1}, want: "*"},
		{name: "revealed zero", cell: Cell{Revealed: true}, want: "0"},
		{name: "revealed numbered", cell: Cell{Revealed: true, AdjacentCount: 1}, want: "1"},
		{name: "debug black hole", cell: Cell{Hazard: true}, debug: true, want: "H"},
		{name: "debug revealed black hole", cell: Cell{Hazard: true, Revealed: true}, debug: true, want: "H"},
		{name: "debug hidden", cell: Cell{AdjacentCount: 3}, debug: true, want: "3"},
		{name: "debug revealed", cell: Cell{Revealed: true, AdjacentCount: 1}, debug: true, want: "1R"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.cell.Render(test.debug))
		})
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "*", Cell{AdjacentCount: 2}.String())
	assert.Equal(t, "2", Cell{Revealed: true, AdjacentCount: 2}.String())
}
