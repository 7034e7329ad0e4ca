package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"mcq-creator/internal/app"
	"mcq-creator/internal/config"
	"mcq-creator/internal/domain"
	"mcq-creator/internal/dto"
	"mcq-creator/internal/logger"
	"mcq-creator/internal/service"
	"mcq-creator/internal/validation"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	file    string
	count   int
	subject string
	tone    string
	out     string
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz from a document",
	Example: `  mcqgen generate --file notes.pdf --count 5 --subject biology --tone simple
  mcqgen generate --file chapter.txt --count 10 --subject history --tone hard --out history.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.Initialize(cfg.Logger); err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		defer logger.Sync()

		svc, err := app.NewQuizService(cfg, nil, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runGenerate(ctx, svc, genOpts, cmd.OutOrStdout())
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genOpts.file, "file", "f", "", "PDF or TXT file to build the quiz from")
	f.IntVarP(&genOpts.count, "count", "n", domain.MinQuestionCount, "Number of questions (3-50)")
	f.StringVarP(&genOpts.subject, "subject", "s", "", "Subject of the quiz (max 20 characters)")
	f.StringVarP(&genOpts.tone, "tone", "t", "Simple", "Complexity level of the questions (max 20 characters)")
	f.StringVarP(&genOpts.out, "out", "o", service.QuizCSVFileName, "Where to write the CSV export")
	_ = generateCmd.MarkFlagRequired("file")
	_ = generateCmd.MarkFlagRequired("subject")
}

// runGenerate runs one generation cycle and renders its outcome to w.
func runGenerate(ctx context.Context, svc service.QuizService, opts generateOptions, w io.Writer) error {
	info, statErr := os.Stat(opts.file)
	req := validation.GenerateQuizRequest{
		HasFile: statErr == nil && !info.IsDir(),
		Count:   opts.count,
		Subject: strings.TrimSpace(opts.subject),
		Tone:    strings.TrimSpace(opts.tone),
	}
	if errs := validation.NewValidator().ValidateGenerateQuizRequest(req); len(errs) > 0 {
		return errs
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return domain.NewDocumentReadError(err)
	}
	defer f.Close()

	resp, err := svc.GenerateQuiz(ctx, service.GenerateQuizInput{
		Document: domain.Document{
			Name:    filepath.Base(opts.file),
			Size:    info.Size(),
			Content: f,
		},
		Count:   req.Count,
		Subject: req.Subject,
		Tone:    req.Tone,
	})
	if err != nil {
		if de, ok := domain.AsDomainError(err); ok {
			return fmt.Errorf("%s", de.UserMessage())
		}
		return err
	}

	if resp.Kind == dto.KindRaw {
		return printRaw(w, resp.Raw)
	}

	if err := printTable(w, resp.Rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nReview:\n%s\n", resp.Review)

	if err := os.WriteFile(opts.out, []byte(resp.CSV), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	logger.Get().Info("Quiz exported", zap.String("path", opts.out), zap.Int("rows", len(resp.Rows)))
	fmt.Fprintf(w, "\nQuiz saved to %s\n", opts.out)
	return nil
}

// printTable renders rows numbered from 1 under the MCQ, Choices and Correct
// headers.
func printTable(w io.Writer, rows []dto.QuizRowResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(domain.QuizTableHeader, "\t"))
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.Index, row.MCQ, row.Choices, row.Correct)
	}
	return tw.Flush()
}

// printRaw writes an unexpected generator value as is.
func printRaw(w io.Writer, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		_, err = fmt.Fprintf(w, "%v\n", v)
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
