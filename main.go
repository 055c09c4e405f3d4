package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/revisionbot/internal/ai"
	"github.com/example/revisionbot/internal/bot"
	"github.com/example/revisionbot/internal/config"
	"github.com/example/revisionbot/internal/database"
	"github.com/example/revisionbot/internal/excel"
	"github.com/example/revisionbot/internal/logger"
	"github.com/example/revisionbot/internal/notify"
	"github.com/example/revisionbot/internal/scheduler"
	"github.com/example/revisionbot/internal/service"
	"github.com/example/revisionbot/internal/state"
)

// outboxSize bounds notifications waiting for delivery to the chat.
const outboxSize = 64

func main() {
	exportPath := flag.String("export", "", "write the plan to this .xlsx file and exit")
	importPath := flag.String("import", "", "import topics from this .xlsx or .csv file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *exportPath, *importPath); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, exportPath, importPath string) error {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	store := database.NewConfigRepository(database.NewKVStore(db), cfg.Planner.StorageKey)
	oneShot := exportPath != "" || importPath != ""

	outbox := bot.NewOutbox(outboxSize, log)
	sinks := notify.Multi{notify.Log{Logger: log}}
	if !oneShot {
		sinks = append(sinks, outbox)
	}
	svc := service.New(ctx, store, state.New(sinks), service.WithLogger(log))

	switch {
	case exportPath != "":
		return exportPlan(svc, exportPath, log)
	case importPath != "":
		return importTopics(ctx, svc, importPath, log)
	}
	return serve(ctx, cfg, log, svc, outbox)
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, svc *service.PlannerService, outbox *bot.Outbox) error {
	if err := cfg.Telegram.ValidateBot(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	api, err := bot.Connect(cfg.Telegram.Token)
	if err != nil {
		return err
	}
	log.Info("authorized on telegram", "account", api.Self.UserName)

	var questions *ai.ChatGPT
	if cfg.OpenAI.Enabled() {
		if questions, err = ai.New(cfg.OpenAI); err != nil {
			return err
		}
	}

	var b *bot.Bot
	botOpts := []bot.Option{bot.WithLogger(log)}
	if questions != nil {
		botOpts = append(botOpts, bot.WithQuestions(questions))
	}

	// The scheduler sends through the bot and the bot triggers the scheduler,
	// so the sender resolves b lazily.
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		schedOpts := []scheduler.Option{scheduler.WithLogger(log)}
		if questions != nil {
			schedOpts = append(schedOpts, scheduler.WithQuestions(questions))
		}
		sender := scheduler.SenderFunc(func(ctx context.Context, text string) error {
			return b.SendDigest(ctx, text)
		})
		sched = scheduler.New(cfg.Scheduler, svc, sender, schedOpts...)
		botOpts = append(botOpts, bot.WithReminder(sched))
	}

	b = bot.New(api, bot.ConfigFrom(cfg), svc, outbox, botOpts...)

	if sched != nil {
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- b.Start(ctx) }()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("bot stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Telegram.StopTimeout)
	defer cancel()
	return b.Stop(shutdownCtx)
}

func exportPlan(svc *service.PlannerService, path string, log *slog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := excel.ExportPlan(f, svc.Config(), svc.Plan()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Info("plan exported", "path", path)
	return nil
}

func importTopics(ctx context.Context, svc *service.PlannerService, path string, log *slog.Logger) error {
	result, err := excel.ImportTopics(excel.DefaultImportConfig(path))
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		log.Warn("row skipped", "detail", e)
	}
	summary := svc.ImportTopics(ctx, result.Rows)
	log.Info("topics imported", "path", path,
		"topics", summary.TopicsCreated, "subjects", summary.SubjectsCreated, "rejected", len(result.Errors))
	return nil
}
