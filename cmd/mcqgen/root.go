package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mcqgen",
	Short:         "Create multiple choice quizzes from documents",
	Long:          "mcqgen reads a PDF or TXT document, asks a language model for a multiple choice quiz and a review of it, and exports the quiz as CSV.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
