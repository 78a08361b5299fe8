package accesscontrol

import "sort"

// PermissionSet is the effective set of permission codes a principal holds
// inside a tenant. A universal set (owner, super admin) contains every code.
type PermissionSet struct {
	universal bool
	codes     map[string]struct{}
}

// NewPermissionSet builds a set from explicit codes.
func NewPermissionSet(codes ...string) PermissionSet {
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		m[c] = struct{}{}
	}
	return PermissionSet{codes: m}
}

// EmptyPermissionSet is the fail-closed resolution result.
func EmptyPermissionSet() PermissionSet {
	return PermissionSet{codes: map[string]struct{}{}}
}

// UniversalPermissionSet contains every permission code.
func UniversalPermissionSet() PermissionSet {
	return PermissionSet{universal: true}
}

// IsUniversal reports whether the set allows everything.
func (s PermissionSet) IsUniversal() bool { return s.universal }

// Contains reports whether the set grants the given code.
func (s PermissionSet) Contains(code string) bool {
	if s.universal {
		return true
	}
	_, ok := s.codes[code]
	return ok
}

// ContainsAny reports whether the set grants at least one of the codes.
func (s PermissionSet) ContainsAny(codes ...string) bool {
	if s.universal {
		return len(codes) > 0
	}
	for _, c := range codes {
		if _, ok := s.codes[c]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of explicit codes; universal sets report 0.
func (s PermissionSet) Len() int { return len(s.codes) }

// Codes returns the explicit codes in sorted order, for serialization.
func (s PermissionSet) Codes() []string {
	out := make([]string, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
