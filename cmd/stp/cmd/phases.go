package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/trigger"
)

// phasesCmd represents the phases command
var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "List the recognized lifecycle phases",
	Long:  `Display the seven lifecycle phases the platform fires during a logical operation, in firing order.`,
	RunE:  runPhases,
}

func init() {
	rootCmd.AddCommand(phasesCmd)
}

type phaseInfo struct {
	Phase  string `json:"phase" yaml:"phase"`
	Timing string `json:"timing" yaml:"timing"`
}

func runPhases(cmd *cobra.Command, args []string) error {
	phases := trigger.AllPhases()
	infos := make([]phaseInfo, 0, len(phases))
	for _, p := range phases {
		timing := "after"
		if p.IsBefore() {
			timing = "before"
		}
		infos = append(infos, phaseInfo{Phase: string(p), Timing: timing})
	}

	if IsJSONOutput() {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	if IsYAMLOutput() {
		data, err := yaml.Marshal(infos)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Phase", "Timing")
	for _, info := range infos {
		table.Append(info.Phase, info.Timing)
	}
	table.Render()
	fmt.Printf("\nTotal phases: %d\n", len(infos))
	return nil
}
