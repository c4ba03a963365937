package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"studentrecords"
	"studentrecords/common"
	"studentrecords/llm"
	"studentrecords/report"

	"github.com/urfave/cli/v3"
)

func NewSummarizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "summarize",
		Usage:     "Print an LLM summary of the records",
		ArgsUsage: "[student id]",
		Description: "Without arguments, summarizes every student and streams the text as it is generated. " +
			"With a student id, prints that student's progress report.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: `Custom report type to build instead of the students summary (only "summary")`,
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Ollama model to use, overriding configuration",
			},
		},
		Action: handleSummarizeCommand,
	}
}

func handleSummarizeCommand(ctx context.Context, cmd *cli.Command) error {
	settings, err := common.LoadSettings()
	if err != nil {
		return err
	}
	if model := cmd.String("model"); model != "" {
		settings.OllamaModel = model
	}

	service, err := studentrecords.GetService(settings)
	if err != nil {
		return err
	}
	defer service.Close()

	generator := llm.NewOllamaClient(settings.OllamaBaseURL, settings.OllamaModel, &http.Client{})
	summarizer := report.NewSummarizer(service, generator, nil)
	out := cmd.Root().Writer

	switch {
	case cmd.Args().Present():
		var studentId int64
		if _, err := fmt.Sscan(cmd.Args().First(), &studentId); err != nil || studentId <= 0 {
			return fmt.Errorf("invalid student id %q", cmd.Args().First())
		}
		summary, err := summarizer.StudentReport(ctx, studentId)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, summary)
	case cmd.String("type") != "":
		summary, err := summarizer.CustomReport(ctx, cmd.String("type"))
		if errors.Is(err, report.ErrInvalidReportType) {
			return fmt.Errorf("%w, supported types: %s", err, report.CustomReportTypeSummary)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, summary)
	default:
		_, err := summarizer.StreamStudents(ctx, func(fragment string) error {
			_, err := io.WriteString(out, fragment)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}
