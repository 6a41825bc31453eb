package prove

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inpefess/vampire/pkg/saturation"
)

func NewProveCommand() *cobra.Command {
	var (
		strategyPath string
		timeLimit    time.Duration
		ageRatio     int
		weightRatio  int
		logLevel     string
	)

	cmd := &cobra.Command{
		Use:   "prove <path>",
		Short: "Runs saturation over a problem in cnf format",
		Long: `Runs saturation over a problem given in a TPTP-style cnf format.
For instance:

% functions are lowercase, variables uppercase
cnf(left_identity, axiom, mult(e, X) = X).
cnf(hypothesis, axiom, p(mult(e, a))).
cnf(goal, negated_conjecture, ~p(a)).
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return prove(args[0], strategyPath, timeLimit, ageRatio, weightRatio, logLevel)
		},
	}

	cmd.Flags().StringVar(&strategyPath, "strategy", "", "path to a yaml strategy file")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 60*time.Second, "saturation time limit")
	cmd.Flags().IntVar(&ageRatio, "age-ratio", 1, "age picks per selection cycle")
	cmd.Flags().IntVar(&weightRatio, "weight-ratio", 1, "weight picks per selection cycle")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	return cmd
}

func prove(path, strategyPath string, timeLimit time.Duration, ageRatio, weightRatio int, logLevel string) error {
	strategy, err := loadStrategy(strategyPath)
	if err != nil {
		return err
	}
	if strategy.TimeLimit == 0 {
		strategy.TimeLimit = timeLimit
	}
	if strategyPath == "" {
		strategy.AgeRatio = ageRatio
		strategy.WeightRatio = weightRatio
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level (%s): %w", logLevel, err)
	}
	log.SetLevel(level)

	sig, clauses, err := loadProblem(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), strategy.TimeLimit+time.Second)
	defer cancel()

	result, err := saturation.Saturate(ctx, sig, clauses, strategy, saturation.WithLogger(log))
	if err != nil {
		return err
	}

	fmt.Printf("%% SZS status %s\n", szsStatus(result.Reason))
	fmt.Printf("%% activations: %d, generated: %d\n", result.Activations, result.Generated)
	if proof := result.Proof(); proof != nil {
		fmt.Println("% refutation:")
		fmt.Print(proof)
	}
	return nil
}

func szsStatus(r saturation.TerminationReason) string {
	switch r {
	case saturation.Refutation:
		return "Unsatisfiable"
	case saturation.Satisfiable:
		return "Satisfiable"
	case saturation.TimeLimit:
		return "Timeout"
	case saturation.MemoryLimit:
		return "MemoryOut"
	default:
		return "GaveUp"
	}
}
