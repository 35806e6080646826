package checker

import (
	"slices"

	set "github.com/hashicorp/go-set/v3"

	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// MistakeID classifies an invalid step.
type MistakeID int

const (
	EqnAddDiff MistakeID = iota
	EqnMulDiff
	EvalAdd
	EvalMul
	DecompAdd
	DecompMul
	ExprAddNonIdentity
	ExprMulNonIdentity
)

func (id MistakeID) String() string {
	switch id {
	case EqnAddDiff:
		return "EQN_ADD_DIFF"
	case EqnMulDiff:
		return "EQN_MUL_DIFF"
	case EvalAdd:
		return "EVAL_ADD"
	case EvalMul:
		return "EVAL_MUL"
	case DecompAdd:
		return "DECOMP_ADD"
	case DecompMul:
		return "DECOMP_MUL"
	case ExprAddNonIdentity:
		return "EXPR_ADD_NON_IDENTITY"
	case ExprMulNonIdentity:
		return "EXPR_MUL_NON_IDENTITY"
	default:
		return "UNKNOWN"
	}
}

// Description is a short human-readable explanation of the mistake kind.
func (id MistakeID) Description() string {
	switch id {
	case EqnAddDiff:
		return "different values were added to the sides of the equation"
	case EqnMulDiff:
		return "the sides of the equation were multiplied or divided by different values"
	case EvalAdd:
		return "the addition was evaluated incorrectly"
	case EvalMul:
		return "the multiplication was evaluated incorrectly"
	case DecompAdd:
		return "the number was split into terms that do not add up to it"
	case DecompMul:
		return "the number was split into factors that do not multiply to it"
	case ExprAddNonIdentity:
		return "a term that is not zero was added or removed"
	case ExprMulNonIdentity:
		return "a factor that is not one was added or removed"
	default:
		return "unknown mistake"
	}
}

// Priority ranks mistake kinds; only the highest ranked kinds found for a
// step are reported.
func (id MistakeID) Priority() int {
	switch id {
	case EqnAddDiff, EqnMulDiff:
		return 3
	case EvalAdd, EvalMul, DecompAdd, DecompMul:
		return 2
	case ExprAddNonIdentity, ExprMulNonIdentity:
		return 1
	default:
		return 0
	}
}

// Correction suggests replacing the node with the given id.
type Correction struct {
	ID          int
	Replacement semantic.Node
}

// Mistake records the nodes of prev and next implicated in an invalid step.
type Mistake struct {
	ID          MistakeID
	PrevNodes   []semantic.Node
	NextNodes   []semantic.Node
	Corrections []Correction
}

// FilterMistakes drops mistakes that mention nodes outside prev and next,
// removes duplicates and keeps only the highest priority kinds. The order
// of the surviving mistakes is the order they were recorded in.
func FilterMistakes(mistakes []Mistake, prev, next semantic.Node) []Mistake {
	known := semantic.IDs(prev, next)

	var (
		kept = make([]Mistake, 0, len(mistakes))
		seen []mistakeKey
		top  int
	)
	for _, m := range mistakes {
		if !mentionsOnly(m, known) {
			continue
		}
		key := keyOf(m)
		if slices.ContainsFunc(seen, key.equal) {
			continue
		}
		seen = append(seen, key)
		kept = append(kept, m)
		top = max(top, m.ID.Priority())
	}

	return slices.DeleteFunc(kept, func(m Mistake) bool {
		return m.ID.Priority() < top
	})
}

func mentionsOnly(m Mistake, ids *set.Set[int]) bool {
	for _, n := range slices.Concat(m.PrevNodes, m.NextNodes) {
		if !ids.Contains(n.ID()) {
			return false
		}
	}
	return true
}

type mistakeKey struct {
	id   MistakeID
	prev *set.Set[int]
	next *set.Set[int]
}

func keyOf(m Mistake) mistakeKey {
	return mistakeKey{id: m.ID, prev: nodeIDs(m.PrevNodes), next: nodeIDs(m.NextNodes)}
}

func (k mistakeKey) equal(o mistakeKey) bool {
	return k.id == o.id && k.prev.Equal(o.prev) && k.next.Equal(o.next)
}

func nodeIDs(nodes []semantic.Node) *set.Set[int] {
	ids := set.New[int](len(nodes))
	for _, n := range nodes {
		ids.Insert(n.ID())
	}
	return ids
}
