package catalog

import (
	"errors"
	"fmt"
)

// ServiceInfo is one entry of the service catalog.
type ServiceInfo struct {
	Value       string `json:"value"`
	DisplayName string `json:"displayName"`
	ShortName   string `json:"shortName"`
}

// services is the canonical catalog. Never mutated after init.
var services = []ServiceInfo{
	{Value: "end-of-lease", DisplayName: "End of Lease Cleaning", ShortName: "End of Lease"},
	{Value: "residential", DisplayName: "Residential Cleaning", ShortName: "Residential"},
	{Value: "commercial", DisplayName: "Commercial Cleaning", ShortName: "Commercial"},
	{Value: "deep-cleaning", DisplayName: "Deep Cleaning", ShortName: "Deep Clean"},
	{Value: "window", DisplayName: "Window Cleaning", ShortName: "Windows"},
	{Value: "carpet", DisplayName: "Carpet Cleaning", ShortName: "Carpet"},
	{Value: "carpet-steam", DisplayName: "Carpet Steam Cleaning", ShortName: "Carpet Steam"},
	{Value: "carpet-dry", DisplayName: "Carpet Dry Cleaning", ShortName: "Carpet Dry"},
	{Value: "solar-panel", DisplayName: "Solar Panel Cleaning", ShortName: "Solar Panels"},
	{Value: "tile-grout", DisplayName: "Tile & Grout Cleaning", ShortName: "Tile & Grout"},
	{Value: "upholstery", DisplayName: "Upholstery Cleaning", ShortName: "Upholstery"},
	{Value: "oven", DisplayName: "Oven Cleaning", ShortName: "Oven"},
	{Value: "office", DisplayName: "Office Cleaning", ShortName: "Office"},
	{Value: "move-in", DisplayName: "Move In Cleaning", ShortName: "Move In"},
	{Value: "post-construction", DisplayName: "Post Construction Cleaning", ShortName: "Post Construction"},
	{Value: "airbnb", DisplayName: "Airbnb Turnover Cleaning", ShortName: "Airbnb"},
}

// legacyAliases maps full service names stored by older forms to canonical ids.
// Every target must be a catalog key (see Validate).
var legacyAliases = map[string]string{
	"End of Lease Cleaning":      "end-of-lease",
	"End of Lease":               "end-of-lease",
	"Bond Cleaning":              "end-of-lease",
	"Residential Cleaning":       "residential",
	"House Cleaning":             "residential",
	"Regular Cleaning":           "residential",
	"Commercial Cleaning":        "commercial",
	"Deep Cleaning":              "deep-cleaning",
	"Spring Cleaning":            "deep-cleaning",
	"Window Cleaning":            "window",
	"Carpet Cleaning":            "carpet",
	"Carpet Steam Cleaning":      "carpet-steam",
	"Carpet Dry Cleaning":        "carpet-dry",
	"Solar Panel Cleaning":       "solar-panel",
	"Tile and Grout Cleaning":    "tile-grout",
	"Tile & Grout Cleaning":      "tile-grout",
	"Upholstery Cleaning":        "upholstery",
	"Oven Cleaning":              "oven",
	"Office Cleaning":            "office",
	"Move In Cleaning":           "move-in",
	"Post Construction Cleaning": "post-construction",
	"Builders Cleaning":          "post-construction",
	"Airbnb Cleaning":            "airbnb",
}

var bookingFormOrder = []string{
	"end-of-lease",
	"residential",
	"commercial",
	"deep-cleaning",
	"window",
	"carpet",
	"solar-panel",
}

var quoteFormOrder = []string{
	"end-of-lease",
	"residential",
	"commercial",
	"office",
	"deep-cleaning",
	"move-in",
	"post-construction",
	"airbnb",
	"window",
	"carpet-steam",
	"carpet-dry",
	"upholstery",
	"tile-grout",
	"oven",
	"solar-panel",
}

var byValue = func() map[string]ServiceInfo {
	m := make(map[string]ServiceInfo, len(services))
	for _, s := range services {
		m[s.Value] = s
	}
	return m
}()

// Canonicalize maps a legacy full name to its canonical id. Anything else is returned unchanged.
func Canonicalize(input string) string {
	if id, ok := legacyAliases[input]; ok {
		return id
	}
	return input
}

// Lookup resolves input (canonical id or legacy alias) to its catalog entry.
func Lookup(input string) (ServiceInfo, bool) {
	s, ok := byValue[Canonicalize(input)]
	return s, ok
}

// IsCanonical reports whether id is a catalog key. Aliases do not count.
func IsCanonical(id string) bool {
	_, ok := byValue[id]
	return ok
}

// IsKnown reports whether input resolves to a catalog entry, directly or via an alias.
func IsKnown(input string) bool {
	_, ok := Lookup(input)
	return ok
}

// ResolveDisplayName returns the display name for a service id or legacy name.
// Unknown input is returned unchanged; matching is exact, without case folding.
func ResolveDisplayName(input string) string {
	if s, ok := Lookup(input); ok {
		return s.DisplayName
	}
	return input
}

// ResolveShortName is ResolveDisplayName for the short form.
func ResolveShortName(input string) string {
	if s, ok := Lookup(input); ok {
		return s.ShortName
	}
	return input
}

// ResolveDisplayNames resolves each entry of a multi-service selection (quotes).
func ResolveDisplayNames(inputs []string) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, ResolveDisplayName(in))
	}
	return out
}

// BookingFormServices returns the booking form options in rendering order.
func BookingFormServices() []ServiceInfo {
	return subset(bookingFormOrder)
}

// QuoteFormServices returns the quote form options in rendering order.
func QuoteFormServices() []ServiceInfo {
	return subset(quoteFormOrder)
}

// All returns a copy of the full catalog in declaration order.
func All() []ServiceInfo {
	out := make([]ServiceInfo, len(services))
	copy(out, services)
	return out
}

func subset(order []string) []ServiceInfo {
	out := make([]ServiceInfo, 0, len(order))
	for _, id := range order {
		out = append(out, byValue[id])
	}
	return out
}

// Validate checks the shipped data: unique non-empty entries, alias targets and form
// lists that point at catalog keys. A failure here is a data bug.
func Validate() error {
	var errs []error
	seen := make(map[string]bool, len(services))
	for _, s := range services {
		if s.Value == "" || s.DisplayName == "" || s.ShortName == "" {
			errs = append(errs, fmt.Errorf("service %q: empty field", s.Value))
		}
		if seen[s.Value] {
			errs = append(errs, fmt.Errorf("service %q: duplicate value", s.Value))
		}
		seen[s.Value] = true
	}
	for alias, target := range legacyAliases {
		if !seen[target] {
			errs = append(errs, fmt.Errorf("alias %q: unknown target %q", alias, target))
		}
	}
	for _, id := range bookingFormOrder {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("booking form: unknown service %q", id))
		}
	}
	for _, id := range quoteFormOrder {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("quote form: unknown service %q", id))
		}
	}
	return errors.Join(errs...)
}
