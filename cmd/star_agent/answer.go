package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/star-refiner/internal/config"
	"github.com/jonathan/star-refiner/internal/llm"
	"github.com/jonathan/star-refiner/internal/observability"
	"github.com/jonathan/star-refiner/internal/types"
	"github.com/jonathan/star-refiner/internal/workflow"
)

var (
	answerRole       string
	answerIndustry   string
	answerQuestion   string
	answerResume     string
	answerJobDesc    string
	answerVerbose    bool
	answerThreshold  float64
	answerIterations int
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Generate and refine one STAR answer",
	Long:  `Run the full refinement loop once and print the best answer.`,
	RunE:  runAnswer,
}

func init() {
	answerCmd.Flags().StringVar(&answerRole, "role", "", "Target role (required)")
	answerCmd.Flags().StringVar(&answerIndustry, "industry", "", "Target industry (required)")
	answerCmd.Flags().StringVar(&answerQuestion, "question", "", "Interview question (required)")
	answerCmd.Flags().StringVar(&answerResume, "resume", "", "Path to a resume text file")
	answerCmd.Flags().StringVar(&answerJobDesc, "job-description", "", "Path to a job description text file")
	answerCmd.Flags().BoolVarP(&answerVerbose, "verbose", "v", false, "Print each iteration")
	answerCmd.Flags().Float64Var(&answerThreshold, "threshold", 0, "Rating threshold override (0 uses config)")
	answerCmd.Flags().IntVar(&answerIterations, "max-iterations", 0, "Iteration cap override (0 uses config)")

	_ = answerCmd.MarkFlagRequired("role")
	_ = answerCmd.MarkFlagRequired("industry")
	_ = answerCmd.MarkFlagRequired("question")

	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if answerThreshold > 0 {
		cfg.RatingThreshold = answerThreshold
	}
	if answerIterations > 0 {
		cfg.MaxIterations = answerIterations
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	req := types.AnswerRequest{
		Role:     answerRole,
		Industry: answerIndustry,
		Question: answerQuestion,
	}
	if answerResume != "" {
		data, err := os.ReadFile(answerResume)
		if err != nil {
			return fmt.Errorf("failed to read resume file: %w", err)
		}
		req.Resume = string(data)
	}
	if answerJobDesc != "" {
		data, err := os.ReadFile(answerJobDesc)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		req.JobDescription = string(data)
	}

	ctx := cmd.Context()
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	orch := workflow.New(client, cfg.WorkflowConfig())
	payload, state := orch.Run(ctx, req)

	printer := observability.NewPrinter(os.Stdout)
	if answerVerbose || cfg.Verbose {
		for _, item := range payload.History {
			printer.PrintSTARAnswer(fmt.Sprintf("ANSWER — ITERATION %d", item.Iteration), item.Answer)
			printer.PrintCritique(item.Iteration, item.Critique)
		}
	}
	printer.PrintSTARAnswer("BEST ANSWER", payload.Answer)
	printer.PrintOutcome(state)

	if !state.Status.Completed() {
		return fmt.Errorf("run did not complete: %s", state.ErrorMessage)
	}
	return nil
}
