package commands

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/quillon/jobshop/pkg/application/dto"
	"github.com/quillon/jobshop/pkg/application/services/orchestration"
	"github.com/quillon/jobshop/pkg/application/services/scheduling"
	"github.com/quillon/jobshop/pkg/domain/entities"
	csvrepo "github.com/quillon/jobshop/pkg/infrastructure/repositories/csv"
	"github.com/quillon/jobshop/pkg/infrastructure/repositories/memory"
	"github.com/quillon/jobshop/pkg/interfaces/cli/output"
)

type scheduleOptions struct {
	workCentersFile string
	operationsFile  string
	bookingsFile    string
	jobID           string
	due             string
	priority        int
	quantity        int
	commit          bool
	format          string
	gantt           bool
}

func newScheduleCommand(verbose *bool) *cobra.Command {
	opts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate a scheduling suggestion for one job",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, opts, *verbose)
		},
	}

	cmd.Flags().StringVar(&opts.workCentersFile, "work-centers", "", "work centers CSV file (required)")
	cmd.Flags().StringVar(&opts.operationsFile, "operations", "", "operations CSV file (required)")
	cmd.Flags().StringVar(&opts.bookingsFile, "bookings", "", "committed bookings CSV file")
	cmd.Flags().StringVar(&opts.jobID, "job-id", "JOB-1", "job identifier")
	cmd.Flags().StringVar(&opts.due, "due", "", "due date (YYYY-MM-DD; default now + configured days)")
	cmd.Flags().IntVar(&opts.priority, "priority", 0, "advisory priority level")
	cmd.Flags().IntVar(&opts.quantity, "quantity", 1, "job quantity")
	cmd.Flags().BoolVar(&opts.commit, "commit", false, "persist the suggested assignments as bookings")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&opts.gantt, "gantt", false, "render an ASCII Gantt timeline")
	_ = cmd.MarkFlagRequired("work-centers")
	_ = cmd.MarkFlagRequired("operations")

	return cmd
}

func runSchedule(cmd *cobra.Command, opts *scheduleOptions, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	loader := csvrepo.NewLoader()

	workCenters, err := loader.LoadWorkCenters(opts.workCentersFile)
	if err != nil {
		return err
	}
	operations, err := loader.LoadOperations(opts.operationsFile)
	if err != nil {
		return err
	}

	var bookings []entities.Booking
	if opts.bookingsFile != "" {
		bookings, err = loader.LoadBookings(opts.bookingsFile)
		if err != nil {
			return err
		}
	}

	var dueDate time.Time
	if opts.due != "" {
		dueDate, err = time.Parse("2006-01-02", opts.due)
		if err != nil {
			return errors.Wrapf(err, "invalid due date %q", opts.due)
		}
	}

	workCenterRepo := memory.NewWorkCenterRepository()
	if err := workCenterRepo.LoadWorkCenters(workCenters); err != nil {
		return err
	}
	bookingRepo := memory.NewBookingRepository()
	if err := bookingRepo.LoadBookings(bookings); err != nil {
		return err
	}

	engine := scheduling.NewEngineWithConfig(engineConfigFromViper(), logger)
	orchestrator := orchestration.NewSchedulingOrchestrator(engine, workCenterRepo, bookingRepo, logger)

	job := &entities.Job{
		ID:            opts.jobID,
		DueDate:       dueDate,
		Operations:    operations,
		PriorityLevel: opts.priority,
		Quantity:      opts.quantity,
	}

	started := time.Now()
	suggestion, err := orchestrator.ScheduleJob(cmd.Context(), job, time.Time{}, opts.commit)
	if err != nil {
		return err
	}

	result := dto.NewScheduleResult(job.ID, dueDate, time.Since(started), suggestion)
	return output.Generate(os.Stdout, result, output.Config{
		Format:  opts.format,
		Gantt:   opts.gantt,
		Verbose: verbose,
	})
}
