package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillon/jobshop/pkg/application/services/scheduling"
	csvrepo "github.com/quillon/jobshop/pkg/infrastructure/repositories/csv"
)

type generateOpsOptions struct {
	lineItemsFile string
	outputFile    string
	format        string
}

func newGenerateOpsCommand(verbose *bool) *cobra.Command {
	opts := &generateOpsOptions{}

	cmd := &cobra.Command{
		Use:   "generate-ops",
		Short: "Synthesize a default operation list from quote line items",
		Long: "For jobs created from a quote without explicit routing: one production\n" +
			"operation per line item, sized from its quantity, plus a trailing\n" +
			"quality control and inspection operation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateOps(opts, *verbose)
		},
	}

	cmd.Flags().StringVar(&opts.lineItemsFile, "line-items", "", "line items CSV file (required)")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "write the operations as a CSV file usable by 'schedule --operations'")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json")
	_ = cmd.MarkFlagRequired("line-items")

	return cmd
}

func runGenerateOps(opts *generateOpsOptions, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	loader := csvrepo.NewLoader()
	lineItems, err := loader.LoadLineItems(opts.lineItemsFile)
	if err != nil {
		return err
	}

	engine := scheduling.NewEngineWithConfig(engineConfigFromViper(), logger)
	operations := engine.GenerateOperationsFromLineItems(lineItems)
	logger.Infow("operations generated", "line_items", len(lineItems), "operations", len(operations))

	if opts.outputFile != "" {
		if err := loader.WriteOperations(opts.outputFile, operations); err != nil {
			return err
		}
		fmt.Printf("Wrote %d operations to %s\n", len(operations), opts.outputFile)
	}

	switch opts.format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(operations)
	default:
		fmt.Printf("%-38s %-34s %4s %8s\n", "ID", "Name", "Seq", "Minutes")
		for _, op := range operations {
			fmt.Printf("%-38s %-34s %4d %8d\n", op.ID, op.Name, op.SequenceOrder, op.EstimatedDuration)
		}
	}
	return nil
}
