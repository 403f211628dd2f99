package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// Inserter stores one snapshot item.
type Inserter[V any] interface {
	Insert(ctx context.Context, item V) error
}

// Remover retires one stored key.
type Remover[K comparable] interface {
	Remove(ctx context.Context, key K) error
}

// BatchRemover retires many keys in one statement. ApplyPlan prefers it over Remover.
type BatchRemover[K comparable] interface {
	RemoveBatch(ctx context.Context, keys []K) error
}

// ApplyPlan executes the actions of a plan against mutator.
//
// Removals run first; a batch removal either succeeds or fails as a whole. Inserts are
// attempted one by one whatever happened to the removals, and a failed insert does not
// stop the rest. All failures are returned joined.
func ApplyPlan[K comparable, V any](ctx context.Context, mutator any, plan *Plan[K, V], opts Options) (ApplyResult, error) {
	var result ApplyResult
	if opts.DryRun || plan.Empty() {
		return result, nil
	}

	var errs []error

	if removeKeys := plan.Keys(ActionRemove); len(removeKeys) > 0 {
		switch m := mutator.(type) {
		case BatchRemover[K]:
			if err := m.RemoveBatch(ctx, removeKeys); err != nil {
				result.Failed += len(removeKeys)
				errs = append(errs, fmt.Errorf("failed to batch remove %d keys: %w", len(removeKeys), err))
			} else {
				result.Removed += len(removeKeys)
			}
		case Remover[K]:
			for _, k := range removeKeys {
				if err := m.Remove(ctx, k); err != nil {
					result.Failed++
					errs = append(errs, fmt.Errorf("failed to remove %v: %w", k, err))
					continue
				}
				result.Removed++
			}
		default:
			return result, fmt.Errorf("mutator %T cannot remove keys", mutator)
		}
	}

	var inserts []Action[K, V]
	for _, a := range plan.Actions {
		if a.Type == ActionInsert {
			inserts = append(inserts, a)
		}
	}

	if len(inserts) > 0 {
		inserter, ok := mutator.(Inserter[V])
		if !ok {
			errs = append(errs, fmt.Errorf("mutator %T cannot insert items", mutator))
			return result, errors.Join(errs...)
		}
		for _, a := range inserts {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				break
			}
			if err := inserter.Insert(ctx, a.Item); err != nil {
				result.Failed++
				errs = append(errs, fmt.Errorf("failed to insert %v: %w", a.Key, err))
				continue
			}
			result.Inserted++
		}
	}

	return result, errors.Join(errs...)
}
