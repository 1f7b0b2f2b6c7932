package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/firpredict/internal/document"
	"github.com/sant0-9/firpredict/internal/llm"
	"github.com/sant0-9/firpredict/internal/predict"
	"github.com/sant0-9/firpredict/internal/sections"
	"github.com/sant0-9/firpredict/internal/session"
)

var (
	plainOutput  bool
	exportDir    string
	exportFormat string
)

var predictCmd = &cobra.Command{
	Use:   "predict [case description...]",
	Short: "Predict BNS sections for one case",
	Long: `Sends one case description to the configured provider and prints the
predicted sections. The case is read from the arguments, or from stdin when
no arguments are given.

Example:
  firpredict predict "A person snatched a gold chain from a woman on the street"
  cat case.txt | firpredict predict --out ./reports --format docx`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print plain text instead of rendered markdown")
	predictCmd.Flags().StringVarP(&exportDir, "out", "o", "", "Also save a report into this directory")
	predictCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Report format: docx, md or html (default from config)")
}

func runPredict(cmd *cobra.Command, args []string) error {
	caseText, err := readCase(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}

	p := predict.New(provider, session.NewHistory(), logger, predict.Options{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	res, err := p.Predict(ctx, caseText)
	if errors.Is(err, predict.ErrEmptyInput) {
		return fmt.Errorf("please enter a case description before predicting")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	units := sections.ToDisplay(res.Lines)
	if plainOutput {
		fmt.Fprintln(out, plainText(units))
	} else {
		r, err := sections.NewRenderer(80, "")
		if err != nil {
			logger.Debug("glamour unavailable", zap.Error(err))
		}
		fmt.Fprint(out, sections.Render(units, r))
	}

	if exportDir != "" {
		meta, err := saveReport(exportDir, exportFormat, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s (%s)\n", meta.Path, meta.FileSizeHuman())
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Note: AI-generated predictions. Verify with a legal professional.")
	return nil
}

// readCase joins the arguments, or reads stdin when there are none
func readCase(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no case description given: pass it as an argument or pipe it on stdin")
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func plainText(units []sections.DisplayUnit) string {
	lines := make([]string, len(units))
	for i, u := range units {
		lines[i] = u.String()
	}
	return strings.Join(lines, "\n")
}

func saveReport(dir, format string, res *predict.Result) (document.Metadata, error) {
	if format == "" {
		format = cfg.Export.Format
	}
	f, err := document.ParseFormat(format)
	if err != nil {
		return document.Metadata{}, err
	}
	exporter, err := document.ExporterFor(f)
	if err != nil {
		return document.Metadata{}, err
	}

	meta, err := document.Save(dir, exporter, document.Build(res.Record.Case, res.Lines))
	if err != nil {
		return document.Metadata{}, fmt.Errorf("failed to save report: %w", err)
	}
	logger.Info("export",
		zap.String("format", string(meta.Format)),
		zap.Int64("bytes", meta.SizeBytes),
		zap.String("path", meta.Path),
	)
	return meta, nil
}
