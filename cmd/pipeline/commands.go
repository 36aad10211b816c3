package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"radbytes.org/pulse/common/id"
	"radbytes.org/pulse/common/logger"
	"radbytes.org/pulse/core/config"
	"radbytes.org/pulse/core/db"
	"radbytes.org/pulse/internal/feedback"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/service"
	"radbytes.org/pulse/internal/store"
)

type runOptions struct {
	userID     int64
	credential string
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pulse-pipeline",
		Short:         "Run the feedback pipeline outside the worker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Turn one employee's conversation into plan records",
		Long: `Runs extraction, routing, categorization and coaching for a single user and
prints the transformed result as JSON. Both plan records are written unless
--dry-run is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.userID <= 0 {
				return errors.New("--user-id is required")
			}
			if opts.credential == "" {
				opts.credential = os.Getenv("PULSE_RUN_API_KEY")
			}
			if err := runPipeline(cmd.Context(), opts, cmd.OutOrStdout()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.userID, "user-id", 0, "employee whose conversation to process")
	cmd.Flags().StringVar(&opts.credential, "credential", "", "completion API key for this run (default: configured key, or $PULSE_RUN_API_KEY)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the result without writing plan records")
	return cmd
}

func runPipeline(ctx context.Context, opts runOptions, out io.Writer) error {
	cfg, err := config.Load(config.ServiceTypePipeline)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg)

	if !cfg.AnalysisLLM.Enabled() && opts.credential == "" {
		return errors.New("no completion key: set OPENAI_API_KEY or pass --credential")
	}

	if err := id.Init(3); err != nil {
		return fmt.Errorf("initializing id generator: %w", err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	stores := store.NewStores(database.Queries())
	user, err := stores.Users().GetByID(ctx, opts.userID)
	if err != nil {
		return fmt.Errorf("loading user %d: %w", opts.userID, err)
	}

	var plans feedback.PlanWriter = service.NewPlanWriter(service.NewTxRunner(database))
	if opts.dryRun {
		plans = discardPlans{}
	}

	pipeline := feedback.NewPipeline(
		service.NewConversationSource(stores.Chats()),
		plans,
		service.NewFeedbackClients(cfg.AnalysisLLM, cfg.CategorizerLLM),
		feedback.PipelineConfig{
			ManagerUserID:      cfg.Feedback.ManagerUserID,
			StructuredFindings: cfg.Feedback.StructuredFinding,
		},
	)

	runCtx := ctx
	if cfg.Worker.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Worker.RunTimeout)
		defer cancel()
	}

	result, err := pipeline.Run(runCtx, feedback.RunInput{
		UserID:     user.ID,
		UserName:   user.Name,
		Credential: opts.credential,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// discardPlans satisfies feedback.PlanWriter for dry runs.
type discardPlans struct{}

func (discardPlans) CreatePlan(ctx context.Context, plan model.PlanOfAction) error {
	slog.InfoContext(ctx, "dry run: plan not written",
		"target_user_id", plan.TargetUserID,
		"categories", len(plan.CategorizedActionItems))
	return nil
}
