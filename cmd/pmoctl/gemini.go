package main

import (
	"context"
	"errors"
	"fmt"

	"pmo-review-api/summary"

	"github.com/spf13/cobra"
)

func newCheckGeminiCmd(a *app) *cobra.Command {
	var prompt string
	var maxTokens int32

	cmd := &cobra.Command{
		Use:   "check-gemini",
		Short: "Send one short prompt to Gemini with the configured key",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.cfg.Gemini()
			gen := summary.NewGeminiClient(a.cfg.GeminiAPIKey, summary.GeminiOptions{
				Model:           settings.Model,
				BaseURL:         settings.BaseURL,
				APIVersion:      settings.APIVersion,
				MaxOutputTokens: maxTokens,
				Timeout:         settings.Timeout,
			}, a.log)

			if err := gen.Configured(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.opts.timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Testing %s ...\n", gen.Name())
			text, err := gen.Generate(ctx, prompt)
			var ext *summary.ExternalServiceError
			if errors.As(err, &ext) {
				if ext.StatusCode != 0 {
					fmt.Fprintf(out, "API error %d\n", ext.StatusCode)
				}
				return fmt.Errorf("gemini check failed: %s", ext.Message)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "API connection successful")
			fmt.Fprintf(out, "Response: %s\n", text)
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", `Say "API test successful"`, "prompt text")
	cmd.Flags().Int32Var(&maxTokens, "max-tokens", 50, "maxOutputTokens for the test call")
	return cmd
}
