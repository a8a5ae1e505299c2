// Package palette maps population codes to plot colors.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"golang.org/x/image/colornames"
)

// FallbackError is the unknown-label policy that fails instead of coloring.
const FallbackError = "error"

// DefaultColors is the 1000 Genomes super-population coloring: American
// firebrick, European green, African coral, East Asian royalblue and South
// Asian blueviolet.
var DefaultColors = map[string]string{
	"PUR": "firebrick",
	"CLM": "firebrick",
	"MXL": "firebrick",
	"PEL": "firebrick",
	"TSI": "green",
	"IBS": "green",
	"CEU": "green",
	"GBR": "green",
	"FIN": "green",
	"LWK": "coral",
	"MSL": "coral",
	"GWD": "coral",
	"YRI": "coral",
	"ESN": "coral",
	"ACB": "coral",
	"ASW": "coral",
	"KHV": "royalblue",
	"CDX": "royalblue",
	"CHS": "royalblue",
	"CHB": "royalblue",
	"JPT": "royalblue",
	"STU": "blueviolet",
	"ITU": "blueviolet",
	"BEB": "blueviolet",
	"GIH": "blueviolet",
	"PJL": "blueviolet",
}

// UnknownLabelError reports a population code that has no color.
type UnknownLabelError struct {
	Code string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown population code %q", e.Code)
}

// Palette resolves population codes to named colors.
type Palette struct {
	names    map[string]string
	fallback string
}

// New builds a palette from the default table with overrides applied on top.
// fallback is either FallbackError or a color name used for unknown codes.
// All color names are validated up front.
func New(overrides map[string]string, fallback string) (*Palette, error) {
	p := &Palette{names: make(map[string]string, len(DefaultColors)+len(overrides))}
	for code, name := range DefaultColors {
		p.names[code] = name
	}
	for code, name := range overrides {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := colornames.Map[name]; !ok {
			return nil, fmt.Errorf("label_colors: unknown color name %q for %s", name, code)
		}
		p.names[strings.ToUpper(code)] = name
	}
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		fallback = FallbackError
	}
	if fallback != FallbackError {
		if _, ok := colornames.Map[fallback]; !ok {
			return nil, fmt.Errorf("unknown_label: unknown color name %q", fallback)
		}
	}
	p.fallback = fallback
	return p, nil
}

// Default returns the built-in table with the error policy.
func Default() *Palette {
	p, _ := New(nil, FallbackError)
	return p
}

// Name returns the color name for code.
func (p *Palette) Name(code string) (string, error) {
	if name, ok := p.names[code]; ok {
		return name, nil
	}
	if p.fallback == FallbackError {
		return "", &UnknownLabelError{Code: code}
	}
	return p.fallback, nil
}

// Color returns the RGBA value for code.
func (p *Palette) Color(code string) (color.RGBA, string, error) {
	name, err := p.Name(code)
	if err != nil {
		return color.RGBA{}, "", err
	}
	return colornames.Map[name], name, nil
}

// Codes lists the known population codes in sorted order.
func (p *Palette) Codes() []string {
	codes := make([]string, 0, len(p.names))
	for c := range p.names {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Fallback returns the unknown-label policy.
func (p *Palette) Fallback() string { return p.fallback }
