package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type line struct {
	ItemID   int64   `json:"item_id" validate:"gt=0"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

type draft struct {
	Name     string  `json:"name" validate:"required"`
	Hours    float64 `json:"chair_time_hours" validate:"gt=0"`
	Rounding int     `json:"rounding_nearest" validate:"oneof=1 5 10 50 100"`
	Lines    []line  `json:"lines" validate:"dive"`
	Internal string  `json:"-"`
}

func TestStructValid(t *testing.T) {
	d := draft{Name: "Filling", Hours: 0.75, Rounding: 5, Lines: []line{{ItemID: 1, Quantity: 2}}}
	assert.Nil(t, Struct(d))
}

func TestStructReportsJSONPaths(t *testing.T) {
	d := draft{Hours: 0, Rounding: 7, Lines: []line{{ItemID: 1, Quantity: 1}, {ItemID: 0, Quantity: -1}}}

	got := Struct(d)
	assert.Equal(t, map[string]string{
		"name":              "required",
		"chair_time_hours":  "gt",
		"rounding_nearest":  "oneof",
		"lines[1].item_id":  "gt",
		"lines[1].quantity": "gt",
	}, got)
}
