package gen

import "strings"

// AnonymousField replaces an empty field name; the target language accepts
// it as a blank member placeholder.
const AnonymousField = "_"

// decimalGuard is prefixed onto purely-decimal identifiers, which are not
// valid identifiers in the target language.
const decimalGuard = "_"

// TrimName strips a single leading namespace prefix from name.
func (t *Tables) TrimName(name string) string {
	return strings.TrimPrefix(name, t.StripPrefix)
}

// RenameReserved substitutes identifiers colliding with target-language
// reserved words. Exact match only.
func (t *Tables) RenameReserved(name string) string {
	if alt, ok := t.ReservedWords[name]; ok {
		return alt
	}

	return name
}

// Identifier normalizes a field or parameter identifier: prefix trim,
// anonymous placeholder, reserved-word remap, decimal guard.
func (t *Tables) Identifier(name string) string {
	name = t.TrimName(name)
	if name == "" {
		return AnonymousField
	}

	return GuardDecimal(t.RenameReserved(name))
}

// SimplifyEnumConstant strips the longest applicable known prefix from an
// enum constant name. The specific set is consulted first; the broad set
// only applies when no specific prefix matches.
func (t *Tables) SimplifyEnumConstant(name string) string {
	if stripped, ok := stripLongest(name, t.EnumPrefixesSpecific); ok {
		return stripped
	}

	if stripped, ok := stripLongest(name, t.EnumPrefixesBroad); ok {
		return stripped
	}

	return name
}

func stripLongest(name string, prefixes map[string]struct{}) (string, bool) {
	best := ""

	for prefix := range prefixes {
		if strings.HasPrefix(name, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}

	if best == "" {
		return name, false
	}

	return name[len(best):], true
}

// GuardDecimal prefixes a non-numeric sigil onto identifiers that are
// purely decimal digits.
func GuardDecimal(name string) string {
	if isDecimal(name) {
		return decimalGuard + name
	}

	return name
}

func isDecimal(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
