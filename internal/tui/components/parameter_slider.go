package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/gcalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider displays an adjustable parameter with visual slider. Values are kept
// rounded to Decimals places so repeated steps land exactly on the range ends.
type ParameterSlider struct {
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Decimals    int
	Unit        string // e.g. "%", " mo", "M"
	Prefix      string // e.g. "$"
	Width       int    // Total width of slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new parameter slider
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	return &ParameterSlider{
		Label: label,
		Value: math.Max(min, math.Min(max, value)),
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPrefix sets the value prefix
func (p *ParameterSlider) WithPrefix(prefix string) *ParameterSlider {
	p.Prefix = prefix
	return p
}

// WithDecimals sets how many decimal places the value keeps
func (p *ParameterSlider) WithDecimals(decimals int) *ParameterSlider {
	p.Decimals = decimals
	p.SetValue(p.Value)
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment increases the value by step, reporting whether it changed
func (p *ParameterSlider) Increment() bool {
	newValue := p.round(p.Value + p.Step)
	if newValue > p.Max || newValue == p.Value {
		return false
	}
	p.Value = newValue
	return true
}

// Decrement decreases the value by step, reporting whether it changed
func (p *ParameterSlider) Decrement() bool {
	newValue := p.round(p.Value - p.Step)
	if newValue < p.Min || newValue == p.Value {
		return false
	}
	p.Value = newValue
	return true
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = p.round(math.Max(p.Min, math.Min(p.Max, value)))
}

// DecimalValue returns the value as an exact decimal at the slider's precision.
func (p *ParameterSlider) DecimalValue() decimal.Decimal {
	return decimal.NewFromFloat(p.Value).Round(int32(p.Decimals))
}

// IntValue returns the value rounded to the nearest integer.
func (p *ParameterSlider) IntValue() int {
	return int(math.Round(p.Value))
}

// FormatValue renders v with the slider's prefix, precision and unit.
func (p *ParameterSlider) FormatValue(v float64) string {
	return p.Prefix + strconv.FormatFloat(v, 'f', p.Decimals, 64) + p.Unit
}

func (p *ParameterSlider) round(v float64) float64 {
	scale := math.Pow(10, float64(p.Decimals))
	return math.Round(v*scale) / scale
}

// Percentage returns the value as a percentage of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	// Label
	labelStyle := tuistyles.ParameterLabelStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("\n")

	// Value display
	valueStr := p.FormatValue(p.Value)
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(valueStyle.Render(valueStr))
	content.WriteString("\n")

	// Slider bar
	content.WriteString(p.renderSliderBar())

	// Range indicator
	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	minStr := p.FormatValue(p.Min)
	maxStr := p.FormatValue(p.Max)
	rangeText := fmt.Sprintf("%s  ─  %s", minStr, maxStr)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(rangeText))

	// Description if present
	if p.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Description))
	}

	// Control hints if focused
	if p.IsFocused {
		content.WriteString("\n")
		hintStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorInfo).
			Italic(true)
		content.WriteString(hintStyle.Render("← → to adjust • ↑↓ to navigate"))
	}

	return content.String()
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	percentage := p.Percentage()
	filled := int(math.Round(float64(p.Width) * percentage))
	empty := p.Width - filled

	// Ensure we stay within bounds
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}
	if empty < 0 {
		empty = 0
	}

	var bar strings.Builder

	// Track style
	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle

	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	// Build the bar
	bar.WriteString("[")

	if filled > 0 {
		// Filled portion with thumb at the end
		if filled > 1 {
			bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
		}
		bar.WriteString(thumbStyle.Render("●"))
	} else {
		// Thumb at start
		bar.WriteString(thumbStyle.Render("●"))
	}

	if empty > 1 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty-1)))
	}

	bar.WriteString("]")

	return bar.String()
}

const (
	labelWidth = 34
	valueWidth = 10
)

// RenderCompact returns a compact single-line version
func (p *ParameterSlider) RenderCompact() string {
	valueStr := p.FormatValue(p.Value)

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle

	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	label := labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, p.Label))
	value := valueStyle.Render(fmt.Sprintf("%*s", valueWidth, valueStr))

	// Mini slider
	miniBar := p.renderMiniSliderBar(p.Width / 2)

	cursor := "  "
	if p.IsFocused {
		cursor = tuistyles.SliderThumbStyle.Render("▸ ")
	}
	return cursor + label + " " + value + " " + miniBar
}

// renderMiniSliderBar creates a compact slider bar
func (p *ParameterSlider) renderMiniSliderBar(width int) string {
	percentage := p.Percentage()
	filled := int(math.Round(float64(width) * percentage))

	var bar strings.Builder
	bar.WriteString("[")

	thumbStyle := tuistyles.SliderThumbStyle
	trackStyle := tuistyles.SliderTrackStyle

	for i := 0; i < width; i++ {
		if i == filled {
			bar.WriteString(thumbStyle.Render("●"))
		} else if i < filled {
			bar.WriteString(thumbStyle.Render("━"))
		} else {
			bar.WriteString(trackStyle.Render("─"))
		}
	}

	bar.WriteString("]")
	return bar.String()
}
