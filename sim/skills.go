package sim

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxSkill is the exclusive upper bound on skill identifiers.
const MaxSkill = 64

// SkillSet is a set of small skill identifiers in [0, MaxSkill).
// The zero value is the empty set.
type SkillSet uint64

// NewSkillSet builds a SkillSet from skill identifiers.
// Panics on identifiers outside [0, MaxSkill).
func NewSkillSet(skills ...int) SkillSet {
	var s SkillSet
	for _, k := range skills {
		if k < 0 || k >= MaxSkill {
			panic(fmt.Sprintf("NewSkillSet: skill %d out of range [0, %d)", k, MaxSkill))
		}
		s |= 1 << uint(k)
	}
	return s
}

// Contains reports whether skill k is in the set.
func (s SkillSet) Contains(k int) bool {
	if k < 0 || k >= MaxSkill {
		return false
	}
	return s&(1<<uint(k)) != 0
}

// Union returns the set of skills present in either s or o.
func (s SkillSet) Union(o SkillSet) SkillSet {
	return s | o
}

// IsSupersetOf reports whether every skill of o is also in s.
// Exact containment, no partial credit.
func (s SkillSet) IsSupersetOf(o SkillSet) bool {
	return s&o == o
}

// Len returns the number of skills in the set.
func (s SkillSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Skills returns the skill identifiers in ascending order.
func (s SkillSet) Skills() []int {
	out := make([]int, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros64(v))
	}
	return out
}

func (s SkillSet) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range s.Skills() {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprint(&sb, k)
	}
	sb.WriteString("}")
	return sb.String()
}
