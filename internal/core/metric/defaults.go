package metric

import (
	"crypto/sha256"
	"fmt"
)

// ControllerPartition is the event-log partition of a warp controller action.
func ControllerPartition(action string) string {
	return "warp_controller:" + action
}

// DefaultDefinitions returns the built-in warp protocol metrics in processing order.
// The composite create_job count runs first, then the per-action counters, then the
// reward sum.
func DefaultDefinitions() []Definition {
	defs := []Definition{
		{
			Name: "create_job_count",
			Kind: KindComposite,
			Sources: []Source{
				{PartitionKey: ControllerPartition("create_job")},
				{
					PartitionKey: ControllerPartition("execute_reply"),
					Filter:       &Filter{Field: "sub_action", Equals: "recur_job"},
				},
			},
		},
	}

	for _, action := range []string{"execute_job", "update_job", "prioritize_job"} {
		defs = append(defs, Definition{
			Name:    action + "_count",
			Kind:    KindCount,
			Sources: []Source{{PartitionKey: ControllerPartition(action)}},
		})
	}

	defs = append(defs, Definition{
		Name:    "reward_amount",
		Kind:    KindSum,
		Sources: []Source{{PartitionKey: ControllerPartition("execute_job")}},
		Field:   "job_reward",
	})

	for i := range defs {
		defs[i].Fingerprint = fingerprint(defs[i])
	}
	return defs
}

func fingerprint(d Definition) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", d.Name, d.Kind, d.Field)
	for _, src := range d.Sources {
		fmt.Fprintf(h, "|%s", src.PartitionKey)
		if src.Filter != nil {
			fmt.Fprintf(h, "?%s=%s", src.Filter.Field, src.Filter.Equals)
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
