package models

import "strings"

// ScopeFrame is one {check, index} hop in a forEach item path.
type ScopeFrame struct {
	CheckID string
	Index   int
}

// Scope is an ordered path of ScopeFrame identifying a forEach item context.
// An empty Scope is the aggregate (parent) level.
type Scope []ScopeFrame

// RootScope returns the empty, aggregate scope.
func RootScope() Scope { return nil }

// Child returns a new scope with one more frame appended.
func (s Scope) Child(checkID string, index int) Scope {
	next := make(Scope, len(s)+1)
	copy(next, s)
	next[len(s)] = ScopeFrame{CheckID: checkID, Index: index}
	return next
}

// Depth is the number of frames in the scope (0 for the aggregate scope).
func (s Scope) Depth() int { return len(s) }

// Parent returns the scope one level up, and false if s is already the root.
func (s Scope) Parent() (Scope, bool) {
	if len(s) == 0 {
		return nil, false
	}
	return s[:len(s)-1], true
}

// IsAncestorOf reports whether s is a (non-strict) ancestor of other: every
// frame of s matches the corresponding prefix frame of other.
func (s Scope) IsAncestorOf(other Scope) bool {
	if len(s) > len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Equal reports structural equality.
func (s Scope) Equal(other Scope) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders a scope as "check[0]/child[2]", used as a map key and for
// diagnostics.
func (s Scope) String() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range s {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(f.CheckID)
		b.WriteByte('[')
		b.WriteString(itoa(f.Index))
		b.WriteByte(']')
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
