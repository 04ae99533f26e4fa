// Package fields maps the anonymous inputs of an arbitrary application
// form onto the semantic roles the pipeline knows how to fill. Resolution
// is best-effort: unmatched roles are reported, never treated as errors.
package fields

import "strings"

// FormField is a normalized view of one fillable element on a page
type FormField struct {
	Selector    string
	Tag         string
	Type        string
	Name        string
	ID          string
	Label       string
	Placeholder string
}

// matchableAttrs returns the lowercased attribute values keywords are
// matched against, in priority order
func (f FormField) matchableAttrs() []string {
	attrs := make([]string, 0, 4)
	for _, v := range []string{f.Name, f.ID, f.Label, f.Placeholder} {
		if v != "" {
			attrs = append(attrs, strings.ToLower(v))
		}
	}
	return attrs
}

// Binding ties a role to the field chosen for it
type Binding struct {
	Role  Role
	Field FormField
	Value string
}

// Resolution is the full outcome of matching a form against the role table
type Resolution struct {
	Bindings   []Binding
	Undetected []Role
}

// Bound counts roles that found a field
func (r Resolution) Bound() int { return len(r.Bindings) }

// Resolver assigns form fields to roles using the declarative rule table
type Resolver struct{}

// NewResolver creates a field resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve matches available fields against every role that has a value to
// fill. Each field binds to at most one role. Roles without a value are
// skipped entirely; roles with a value but no matching field end up in
// Undetected.
func (rv *Resolver) Resolve(available []FormField, values map[Role]string) Resolution {
	var res Resolution
	taken := make(map[int]bool, len(available))

	for _, role := range AllRoles {
		value, has := values[role]
		if !has || value == "" {
			continue
		}

		idx := rv.pick(role, available, taken)
		if idx < 0 {
			res.Undetected = append(res.Undetected, role)
			continue
		}

		taken[idx] = true
		res.Bindings = append(res.Bindings, Binding{
			Role:  role,
			Field: available[idx],
			Value: value,
		})
	}

	return res
}

// pick returns the index of the best unclaimed field for role, or -1.
// Stronger match tiers win; within a tier the field whose matched
// attribute is closest to the keyword by edit distance wins, and document
// order breaks exact ties.
func (rv *Resolver) pick(role Role, available []FormField, taken map[int]bool) int {
	rule, ok := RuleFor(role)
	if !ok {
		return -1
	}

	bestIdx := -1
	bestTier := tierNone
	bestDist := -1

	for i, field := range available {
		if taken[i] {
			continue
		}

		tier, keyword := rule.match(field)
		if tier == tierNone {
			continue
		}

		dist := 0
		if keyword != "" {
			dist = closestAttrDistance(field, keyword)
		}

		if tier < bestTier || (tier == bestTier && dist < bestDist) {
			bestIdx, bestTier, bestDist = i, tier, dist
		}
	}

	return bestIdx
}

// closestAttrDistance returns the smallest edit distance between keyword
// and any matchable attribute of field
func closestAttrDistance(field FormField, keyword string) int {
	best := -1
	for _, attr := range field.matchableAttrs() {
		d := levenshtein(attr, keyword)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
