package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/quillon/jobshop/pkg/application/services/scheduling"
)

// NewRootCommand builds the jobshop CLI
func NewRootCommand() *cobra.Command {
	var configFile string
	var verbose bool

	root := &cobra.Command{
		Use:   "jobshop",
		Short: "Production scheduling for manufacturing jobs",
		Long: "jobshop assigns a job's sequenced operations to work centers and\n" +
			"concrete time slots, reporting conflicts and a confidence score.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(configFile)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default jobshop.yaml in the working directory)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(newScheduleCommand(&verbose))
	root.AddCommand(newGenerateOpsCommand(&verbose))

	return root
}

func initConfig(configFile string) error {
	viper.SetDefault("engine.day_start_hour", 8)
	viper.SetDefault("engine.horizon_days", 90)
	viper.SetDefault("engine.default_due_date_days", 14)
	viper.SetDefault("scoring.info_penalty", 2)
	viper.SetDefault("scoring.warning_penalty", 10)
	viper.SetDefault("scoring.critical_penalty", 25)
	viper.SetDefault("scoring.overrun_penalty_per_day", 5)
	viper.SetDefault("scoring.due_date_slack_days", 2)

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		return nil
	}

	viper.SetConfigName("jobshop")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		// the config file is optional; defaults apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func engineConfigFromViper() scheduling.EngineConfig {
	return scheduling.EngineConfig{
		DayStartHour:       viper.GetInt("engine.day_start_hour"),
		HorizonDays:        viper.GetInt("engine.horizon_days"),
		DefaultDueDateDays: viper.GetInt("engine.default_due_date_days"),
		Scoring: scheduling.ScorerConfig{
			InfoPenalty:          viper.GetInt("scoring.info_penalty"),
			WarningPenalty:       viper.GetInt("scoring.warning_penalty"),
			CriticalPenalty:      viper.GetInt("scoring.critical_penalty"),
			OverrunPenaltyPerDay: viper.GetInt("scoring.overrun_penalty_per_day"),
			DueDateSlackDays:     viper.GetInt("scoring.due_date_slack_days"),
		},
	}
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	config := zap.NewDevelopmentConfig()
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Execute runs the CLI and exits non-zero on error
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
