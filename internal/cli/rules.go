package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/adjoint/internal/rules/ndimage"
)

// RuleInfo is one row of the rules listing.
type RuleInfo struct {
	Name     string   `json:"name"`
	Symmetry string   `json:"symmetry"`
	JVP      string   `json:"jvp"`
	Modes    []string `json:"modes,omitempty"`
	// NarrowModes are exact only while every kernel radius is at most one.
	NarrowModes []string `json:"narrow_modes,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the filter rules",
		Long: `List every filter with the class of its adjoint, its forward rule
and the boundary modes for which the reverse rule is exact.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := ruleInfos()
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), "ok", infos)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-18s %-13s %-5s %s\n", "FILTER", "ADJOINT", "JVP", "EXACT MODES")
			for _, info := range infos {
				modes := "all"
				if info.Modes != nil {
					modes = strings.Join(info.Modes, ",")
				}
				if info.NarrowModes != nil {
					modes += fmt.Sprintf(" (%s at radius 1)", strings.Join(info.NarrowModes, ","))
				}
				fmt.Fprintf(w, "%-18s %-13s %-5s %s\n", info.Name, info.Symmetry, info.JVP, modes)
			}
			return nil
		},
	}
}

func ruleInfos() []RuleInfo {
	rules := ndimage.Rules()
	out := make([]RuleInfo, len(rules))
	for i, r := range rules {
		out[i] = RuleInfo{Name: r.Name, Symmetry: r.Symmetry.String(), JVP: "none"}
		if r.JVPSame {
			out[i].JVP = "same"
		}
		for _, m := range r.Modes {
			out[i].Modes = append(out[i].Modes, string(m))
		}
		for _, m := range r.NarrowModes {
			out[i].NarrowModes = append(out[i].NarrowModes, string(m))
		}
	}
	return out
}
