package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/interview-tracker/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/interview-tracker/pkg/config"
	"github.com/wadjakorntonsri/interview-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/interview-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/interview-tracker/pkg/logging"
	"github.com/wadjakorntonsri/interview-tracker/pkg/ports"
)

const usage = "expected 'export' or 'import' subcommands"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg := config.Load()
	// Logs go to stderr so an export on stdout stays clean
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: "console",
		File:   cfg.LogFile,
		Stderr: true,
	})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}

	service := services.NewQuestionService(repo)
	err = run(context.Background(), service, logger, os.Args[1:], os.Stdout)
	repo.Close()
	if err != nil {
		logger.Error("command failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, service ports.QuestionService, logger *zap.Logger, args []string, stdout io.Writer) error {
	switch args[0] {
	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
		format := exportCmd.String("format", "csv", "output format: csv or json")
		if err := exportCmd.Parse(args[1:]); err != nil {
			return err
		}
		return doExport(ctx, service, *format, stdout)
	case "import":
		importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
		importFile := importCmd.String("file", "", "JSON file to import")
		if err := importCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.PrintDefaults()
			return fmt.Errorf("import: -file is required")
		}
		file, err := os.Open(*importFile)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()
		_, err = doImport(ctx, service, logger, file)
		return err
	default:
		return fmt.Errorf("unknown subcommand %q: %s", args[0], usage)
	}
}

func doExport(ctx context.Context, service ports.QuestionService, format string, w io.Writer) error {
	switch format {
	case "csv":
		return service.ExportCSV(ctx, w)
	case "json":
		questions, err := service.Dump(ctx)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(questions)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// doImport creates every question in r through the service. Ids are
// reassigned; rows failing validation are skipped and logged.
func doImport(ctx context.Context, service ports.QuestionService, logger *zap.Logger, r io.Reader) (int, error) {
	var questions []domain.Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return 0, fmt.Errorf("decode failed: %w", err)
	}

	count := 0
	for _, q := range questions {
		in := domain.QuestionInput{
			Title:       q.Title,
			Description: q.Description,
			Solution:    q.Solution,
			Difficulty:  q.Difficulty,
			Company:     q.Company,
			Tags:        q.Tags,
			Solved:      q.Solved,
		}
		created, err := service.Create(ctx, in)
		if err != nil {
			logger.Warn("skipping question", zap.String("title", q.Title), zap.Error(err))
			continue
		}
		if q.Solved {
			if _, err := service.Update(ctx, created.ID, in); err != nil {
				return count, fmt.Errorf("failed to mark %d solved: %w", created.ID, err)
			}
		}
		count++
	}
	logger.Info("import finished", zap.Int("imported", count), zap.Int("total", len(questions)))
	return count, nil
}
