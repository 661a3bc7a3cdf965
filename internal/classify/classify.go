// Package classify decides which pending changes lose data if applied
// blindly, and gates the run on an operator decision when any do.
package classify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/pkg/schema"
)

// ErrDestructiveBlocked aborts a run whose destructive changes were
// neither forced nor acknowledged.
var ErrDestructiveBlocked = errors.New("destructive changes require a default value or --force")

// DecisionProvider collects the operator's answer to a destructive
// change prompt. The blocking list is one line per flagged column.
type DecisionProvider func(blocking []string) (string, error)

// Destructive flags every modified column across the run that cannot
// be applied losslessly: a column type change, or a nullable column
// becoming required with its type unchanged. Type changes are listed
// first.
func Destructive(all []schema.Changes) []string {
	var blocking []string
	for _, c := range all {
		for _, m := range c.ModifiedColumns {
			if m.Old.Type != m.New.Type {
				blocking = append(blocking, fmt.Sprintf(
					"  %s.%s: type %s -> %s",
					c.TableName, m.Old.Name, m.Old.Type, m.New.Type))
			}
		}
	}
	for _, c := range all {
		for _, m := range c.ModifiedColumns {
			if m.Old.Nullable && !m.New.Nullable && m.Old.Type == m.New.Type {
				blocking = append(blocking, fmt.Sprintf(
					"  %s.%s: nullable -> not_null (requires a default or backfill)",
					c.TableName, m.New.Name))
			}
		}
	}
	return blocking
}

// Gate evaluates the destructive list once for the whole run, before
// any artifact is written. force bypasses the prompt entirely. An
// empty answer aborts; anything else is an acknowledgment.
func Gate(all []schema.Changes, force bool, decide DecisionProvider) error {
	blocking := Destructive(all)
	if len(blocking) == 0 || force {
		return nil
	}
	if decide == nil {
		return ErrDestructiveBlocked
	}
	answer, err := decide(blocking)
	if err != nil {
		return fmt.Errorf("destructive change prompt: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return ErrDestructiveBlocked
	}
	return nil
}
