package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/platform"
)

var (
	simulateRecords int
	simulateKind    string
	simulateLimit   int
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one logical operation through the dispatcher",
	Long: `Run a synthetic record set through the trigger dispatch engine. The
record set is split into sub-batches of the configured limit, one handler
instance is constructed per sub-batch per phase, and the resulting report
shows how the guard confined each phase body to a single execution.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntVarP(&simulateRecords, "records", "n", 450, "number of synthetic records in the operation")
	simulateCmd.Flags().StringVarP(&simulateKind, "kind", "k", "insert", "operation kind: insert, update, delete, undelete")
	simulateCmd.Flags().IntVarP(&simulateLimit, "limit", "l", 0, "sub-batch record limit (default from config)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	kind, err := platform.ParseOperationKind(simulateKind)
	if err != nil {
		return err
	}
	if simulateRecords < 0 {
		return fmt.Errorf("invalid record count: %d", simulateRecords)
	}

	limit := simulateLimit
	if limit == 0 {
		limit = subBatchLimit()
	}

	logger := newLogger()
	dispatcher, err := platform.NewDispatcher(newAuditFactory(logger), platform.Config{
		SubBatchLimit: limit,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	records := make([]platform.Record, simulateRecords)
	for i := range records {
		records[i] = platform.Record{ID: fmt.Sprintf("rec-%06d", i+1)}
	}

	report, err := dispatcher.Run(kind, records)
	if err != nil {
		return err
	}

	return printReport(report)
}

// printReport renders a dispatch report in the requested output format
func printReport(report *platform.Report) error {
	if IsJSONOutput() {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	if IsYAMLOutput() {
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Operation", "Kind", "Records", "Sub-Batches", "Instances", "Phases Run")
	table.Append(
		report.OperationID,
		string(report.Kind),
		fmt.Sprintf("%d", report.Records),
		fmt.Sprintf("%d", report.SubBatches),
		fmt.Sprintf("%d", report.Instances),
		fmt.Sprintf("%d", len(report.PhasesRun)),
	)
	table.Render()

	if len(report.PhasesRun) > 0 {
		fmt.Println("\nPhases that executed (once each):")
		for _, phase := range report.PhasesRun {
			invocations := report.HookInvocations[phase]
			fmt.Printf("  %-16s hook entered %d time(s), body ran once\n", phase, invocations)
		}
	}
	fmt.Printf("\nElapsed: %.3f ms\n", report.ElapsedMs)
	return nil
}
