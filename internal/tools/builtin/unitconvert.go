package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnitConvertTool converts a numeric value between a small set of common
// units (length, mass, temperature) a UI agent is likely to need when
// reading values off a screen (e.g. converting a shown price or weight).
type UnitConvertTool struct{}

func (UnitConvertTool) Name() string        { return "unit_convert" }
func (UnitConvertTool) Description() string {
	return "Converts a numeric value between units, e.g. {\"value\":10,\"from\":\"km\",\"to\":\"mi\"}."
}
func (UnitConvertTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"value":{"type":"number"},"from":{"type":"string"},"to":{"type":"string"}},"required":["value","from","to"]}`)
}

// conversionFactors maps a unit to its value in a shared base unit per
// dimension (meters for length, grams for mass). Temperature is handled
// separately since it isn't a pure scale factor.
var conversionFactors = map[string]float64{
	"m": 1, "meter": 1, "meters": 1,
	"km": 1000, "kilometer": 1000, "kilometers": 1000,
	"cm": 0.01, "centimeter": 0.01, "centimeters": 0.01,
	"mi": 1609.344, "mile": 1609.344, "miles": 1609.344,
	"ft": 0.3048, "foot": 0.3048, "feet": 0.3048,
	"in": 0.0254, "inch": 0.0254, "inches": 0.0254,
	"yd": 0.9144, "yard": 0.9144, "yards": 0.9144,
	"g": 1, "gram": 1, "grams": 1,
	"kg": 1000, "kilogram": 1000, "kilograms": 1000,
	"lb": 453.59237, "lbs": 453.59237, "pound": 453.59237, "pounds": 453.59237,
	"oz": 28.349523125, "ounce": 28.349523125, "ounces": 28.349523125,
}

func (UnitConvertTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params struct {
		Value float64 `json:"value"`
		From  string  `json:"from"`
		To    string  `json:"to"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	from := strings.ToLower(strings.TrimSpace(params.From))
	to := strings.ToLower(strings.TrimSpace(params.To))

	if result, ok := convertTemperature(params.Value, from, to); ok {
		return strconv.FormatFloat(result, 'g', -1, 64), nil
	}

	fromFactor, fromOK := conversionFactors[from]
	toFactor, toOK := conversionFactors[to]
	if !fromOK || !toOK {
		return "", fmt.Errorf("unsupported unit pair %q -> %q", params.From, params.To)
	}

	result := params.Value * fromFactor / toFactor
	return strconv.FormatFloat(result, 'g', -1, 64), nil
}

func convertTemperature(value float64, from, to string) (float64, bool) {
	isTemp := func(u string) bool {
		switch u {
		case "c", "celsius", "f", "fahrenheit", "k", "kelvin":
			return true
		}
		return false
	}
	if !isTemp(from) || !isTemp(to) {
		return 0, false
	}

	var celsius float64
	switch from {
	case "c", "celsius":
		celsius = value
	case "f", "fahrenheit":
		celsius = (value - 32) * 5 / 9
	case "k", "kelvin":
		celsius = value - 273.15
	}

	switch to {
	case "c", "celsius":
		return celsius, true
	case "f", "fahrenheit":
		return celsius*9/5 + 32, true
	case "k", "kelvin":
		return celsius + 273.15, true
	}
	return 0, false
}
