package authctx

import (
	"errors"
	"fmt"
	"maps"
	"sort"
)

// ErrInvalidClaimShape is returned when a claim element is none of the
// supported shapes (plain string, key/value map, key/value pair).
var ErrInvalidClaimShape = errors.New("invalid claim shape")

// claimKind tags the variant held by a Claim.
type claimKind uint8

const (
	claimInvalid claimKind = iota
	claimFlag
	claimMap
	claimPair
)

// Claim is a single element of a claim list.
//
// Claims are built with Flag, Map or Pair. The zero value is not a valid
// claim and is rejected during resolution with ErrInvalidClaimShape.
type Claim struct {
	kind    claimKind
	key     string
	value   string
	entries map[string]string
}

// Flag returns a claim whose key and value are both name.
func Flag(name string) Claim {
	return Claim{kind: claimFlag, key: name, value: name}
}

// Map returns a claim that merges every entry of m into the claim set.
// The map is copied.
func Map(m map[string]string) Claim {
	return Claim{kind: claimMap, entries: maps.Clone(m)}
}

// Pair returns a claim that sets key to value.
func Pair(key, value string) Claim {
	return Claim{kind: claimPair, key: key, value: value}
}

// Flags is a convenience that converts names into Flag claims.
func Flags(names ...string) []Claim {
	claims := make([]Claim, 0, len(names))
	for _, n := range names {
		claims = append(claims, Flag(n))
	}
	return claims
}

// IsValid reports whether the claim holds one of the supported shapes.
func (c Claim) IsValid() bool {
	return c.kind != claimInvalid
}

// String renders the claim for logs and CLI output.
func (c Claim) String() string {
	switch c.kind {
	case claimFlag:
		return c.key
	case claimPair:
		return c.key + "=" + c.value
	case claimMap:
		keys := make([]string, 0, len(c.entries))
		for k := range c.entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		s := "{"
		for i, k := range keys {
			if i > 0 {
				s += ","
			}
			s += k + "=" + c.entries[k]
		}
		return s + "}"
	default:
		return "<invalid>"
	}
}

// apply writes the claim into dst, overwriting existing keys.
func (c Claim) apply(dst map[string]string) error {
	switch c.kind {
	case claimFlag, claimPair:
		dst[c.key] = c.value
	case claimMap:
		for k, v := range c.entries {
			dst[k] = v
		}
	default:
		return ErrInvalidClaimShape
	}
	return nil
}

// NormalizeClaims folds claims in order into a key/value map.
// Later elements win on key collision.
func NormalizeClaims(claims []Claim) (map[string]string, error) {
	out := make(map[string]string, len(claims))
	for i, c := range claims {
		if err := c.apply(out); err != nil {
			return nil, fmt.Errorf("claim %d: %w", i, err)
		}
	}
	return out, nil
}

// ParseClaims converts loosely typed claim elements, as decoded from YAML,
// JSON or environment input, into claims.
//
// Accepted element shapes:
//   - string: Flag
//   - map[string]string, map[string]any with string values: Map
//   - [2]string, or []string / []any with exactly two string elements: Pair
//
// Any other element fails with ErrInvalidClaimShape.
func ParseClaims(elems []any) ([]Claim, error) {
	claims := make([]Claim, 0, len(elems))
	for i, e := range elems {
		c, err := parseClaim(e)
		if err != nil {
			return nil, fmt.Errorf("claim %d (%T): %w", i, e, err)
		}
		claims = append(claims, c)
	}
	return claims, nil
}

func parseClaim(e any) (Claim, error) {
	switch v := e.(type) {
	case Claim:
		if !v.IsValid() {
			return Claim{}, ErrInvalidClaimShape
		}
		return v, nil
	case string:
		return Flag(v), nil
	case map[string]string:
		return Map(v), nil
	case map[string]any:
		m := make(map[string]string, len(v))
		for k, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return Claim{}, ErrInvalidClaimShape
			}
			m[k] = s
		}
		return Map(m), nil
	case map[any]any:
		m := make(map[string]string, len(v))
		for rk, raw := range v {
			k, kok := rk.(string)
			s, vok := raw.(string)
			if !kok || !vok {
				return Claim{}, ErrInvalidClaimShape
			}
			m[k] = s
		}
		return Map(m), nil
	case [2]string:
		return Pair(v[0], v[1]), nil
	case []string:
		if len(v) != 2 {
			return Claim{}, ErrInvalidClaimShape
		}
		return Pair(v[0], v[1]), nil
	case []any:
		if len(v) != 2 {
			return Claim{}, ErrInvalidClaimShape
		}
		k, kok := v[0].(string)
		s, vok := v[1].(string)
		if !kok || !vok {
			return Claim{}, ErrInvalidClaimShape
		}
		return Pair(k, s), nil
	default:
		return Claim{}, ErrInvalidClaimShape
	}
}
