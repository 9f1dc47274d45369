package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptpilot/promptpilot/internal/adapters/id"
	"github.com/promptpilot/promptpilot/internal/cache"
	"github.com/promptpilot/promptpilot/internal/enhancer"
	"github.com/promptpilot/promptpilot/internal/llm"
	"github.com/promptpilot/promptpilot/internal/ports"
	"github.com/promptpilot/promptpilot/internal/techniques"
)

// enhanceCmd runs a one-shot enhancement from the command line
func enhanceCmd() *cobra.Command {
	var (
		mode      string
		preset    string
		selected  []string
		premium   bool
		showScore bool
		noRefiner bool
	)

	cmd := &cobra.Command{
		Use:   "enhance [prompt]",
		Short: "Enhance a prompt from the command line",
		Long: `Enhance a prompt and print the result to stdout.

The prompt is read from the arguments, or from stdin when no
arguments are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if strings.TrimSpace(prompt) == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				prompt = string(data)
			}

			var refiner ports.Refiner
			if cfg.LLM.Enabled && llmClient != nil && !noRefiner {
				refiner = llm.NewRefiner(llmClient, cfg.RefineTimeout())
			}

			service := enhancer.NewService(
				techniques.NewComposer(),
				cache.New(),
				refiner,
				nil,
				nil,
				nil,
				id.New(),
			)

			result, err := service.Enhance(cmd.Context(), enhancer.EnhanceInput{
				Prompt:     prompt,
				Mode:       mode,
				Techniques: selected,
				Preset:     preset,
				Premium:    premium,
			})
			if err != nil {
				return err
			}

			fmt.Println(result.EnhancedText)
			if showScore {
				fmt.Fprintf(os.Stderr, "\nscore: %.1f  provider: %s  techniques: %d  %d -> %d chars\n",
					result.Score, result.Provider, result.TechniquesApplied,
					result.OriginalLength, result.EnhancedLength)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "rewrite", "enhancement mode (rewrite or compress)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "technique preset (lite, reasoning, creative, ...)")
	cmd.Flags().StringSliceVarP(&selected, "technique", "t", nil, "technique IDs to apply (repeatable)")
	cmd.Flags().BoolVar(&premium, "premium", false, "enable premium techniques")
	cmd.Flags().BoolVar(&showScore, "score", false, "print score details to stderr")
	cmd.Flags().BoolVar(&noRefiner, "no-refiner", false, "skip the external LLM refiner")

	return cmd
}

// techniquesCmd lists the technique catalog
func techniquesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "techniques",
		Short: "List available enhancement techniques",
		Run: func(cmd *cobra.Command, args []string) {
			info := techniques.Info()

			for _, category := range info.Categories {
				fmt.Printf("%s:\n", category)
				for _, t := range info.Techniques {
					if t.Category != category {
						continue
					}
					marker := " "
					if t.Default {
						marker = "*"
					}
					fmt.Printf("  %s %-24s %s\n", marker, t.ID, t.Name)
				}
				fmt.Println()
			}

			fmt.Println("Presets:")
			for name, ids := range info.Presets {
				fmt.Printf("  %-14s %s\n", name, strings.Join(ids, ", "))
			}
			fmt.Println()
			fmt.Println("* applied by default")
		},
	}
}
