package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/cli/habits"
	"github.com/julianstephens/nahar/internal/cli/info"
	"github.com/julianstephens/nahar/internal/cli/settings"
	"github.com/julianstephens/nahar/internal/cli/system"
	"github.com/julianstephens/nahar/internal/cli/tasks"
	"github.com/julianstephens/nahar/internal/constants"
	apperrors "github.com/julianstephens/nahar/internal/errors"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, JSON file, PostgreSQL/Redis URL, or 'keyring' to read the connection string from the OS keyring. Credentials must NOT be embedded in connection strings." type:"string" env:"NAHAR_DB_CONNECTION" default:"~/.config/nahar/nahar.db"`
	Debug   bool   `help:"Mirror debug logs to stderr."`

	Init   system.InitCmd   `cmd:"" help:"Initialize nahar storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Task   struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
		Done   tasks.TaskDoneCmd   `cmd:"" help:"Mark a task completed and archive it."`
		List   tasks.TaskListCmd   `cmd:"" help:"List active tasks."`
		Show   tasks.TaskShowCmd   `cmd:"" help:"Show task details."`
		Alerts tasks.TaskAlertsCmd `cmd:"" help:"Show high-priority tasks due soon."`
	} `cmd:"" help:"Manage tasks."`
	Archive struct {
		List   tasks.ArchiveListCmd   `cmd:"" help:"List archived tasks." default:"1"`
		Delete tasks.ArchiveDeleteCmd `cmd:"" help:"Delete an archived task."`
	} `cmd:"" help:"Browse the task archive."`
	Habit    habits.HabitCmd      `cmd:"" help:"Track daily habits, prayers, and meals."`
	Summary  info.SummaryCmd      `cmd:"" help:"Summarize today's pending tasks."`
	Info     info.InfoCmd         `cmd:"" help:"Show an information page."`
	Topic    info.TopicCmd        `cmd:"" help:"Manage the monthly topic."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		SetAPIKey        system.KeyringSetAPIKeyCmd    `cmd:"" name:"set-api-key" help:"Store the assistant API key in the OS keyring."`
		DeleteAPIKey     system.KeyringDeleteAPIKeyCmd `cmd:"" name:"delete-api-key" help:"Remove the assistant API key from the OS keyring."`
		SetConnection    system.KeyringSetCmd          `cmd:"" name:"set-connection" help:"Store a database connection string in the OS keyring."`
		GetConnection    system.KeyringGetCmd          `cmd:"" name:"get-connection" help:"Show the stored connection string with the password masked."`
		DeleteConnection system.KeyringDeleteCmd       `cmd:"" name:"delete-connection" help:"Remove the stored connection string."`
		Status           system.KeyringStatusCmd       `cmd:"" help:"Show what is stored in the OS keyring." default:"1"`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
	Sweep  system.SweepCmd  `cmd:"" help:"Archive overdue tasks once."`
	Watch  system.WatchCmd  `cmd:"" help:"Archive overdue tasks every minute until interrupted."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Tasks, prayers, habits, and a daily briefing in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := ""
	if ctx.Selected() != nil {
		command = ctx.Selected().Name
	}

	configDir, err := storage.ConfigDir(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	logCfg := logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Console:   CLI.Debug && command != "tui",
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	defer logger.Close()

	store, err := storage.Open(CLI.Config)
	if err != nil {
		if CLI.Config == storage.KeyringConfig {
			err = apperrors.WithHint(err, fmt.Sprintf("store one with '%s keyring set-connection'", constants.AppName))
		}
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	// init handles its own setup
	if command != "" && command != "init" {
		if err := store.Load(appCtx.Context()); err != nil {
			if storage.IsNotInitialized(err) {
				err = apperrors.WithHint(err, fmt.Sprintf("run '%s init' first", constants.AppName))
			}
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
