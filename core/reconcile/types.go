package reconcile

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionInsert adds an item present in the snapshot but not in the store.
	ActionInsert ActionType = "insert"
	// ActionRemove retires a key present in the store but not in the snapshot.
	ActionRemove ActionType = "remove"
)

// Action represents a planned mutation operation.
type Action[K comparable, V any] struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key K `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Item is the snapshot entry for insert actions.
	Item V `json:"-"`
}

// Plan contains the planned actions of one reconciliation.
type Plan[K comparable, V any] struct {
	// Actions contains planned mutation operations, removals first.
	Actions []Action[K, V] `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Stored is the number of distinct keys in the store.
	Stored int `json:"stored"`

	// Snapshot is the number of distinct keys in the snapshot.
	Snapshot int `json:"snapshot"`

	// Unchanged counts keys present on both sides.
	Unchanged int `json:"unchanged"`

	// Inserts counts planned insert actions.
	Inserts int `json:"inserts"`

	// Removes counts planned remove actions.
	Removes int `json:"removes"`
}

// Options controls which parts of a plan are built and applied.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// SkipRemove leaves keys missing from the snapshot alone.
	SkipRemove bool

	// SkipInsert leaves keys missing from the store alone.
	SkipInsert bool
}

// ApplyResult reports what ApplyPlan executed.
type ApplyResult struct {
	Removed  int
	Inserted int
	Failed   int
}

// Keys returns the keys of all actions of type t, in plan order.
func (p *Plan[K, V]) Keys(t ActionType) []K {
	var keys []K
	for _, a := range p.Actions {
		if a.Type == t {
			keys = append(keys, a.Key)
		}
	}
	return keys
}

// Empty reports whether the plan has nothing to do.
func (p *Plan[K, V]) Empty() bool {
	return len(p.Actions) == 0
}
