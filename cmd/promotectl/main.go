package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/AnotherFullstackDev/promotectl/cmd/promotectl/promote"
	"github.com/AnotherFullstackDev/promotectl/internal/config"
	"github.com/AnotherFullstackDev/promotectl/internal/factories"
	"github.com/AnotherFullstackDev/promotectl/internal/lib"
	"github.com/AnotherFullstackDev/promotectl/internal/placeholders"
	"github.com/AnotherFullstackDev/promotectl/internal/placeholders/git"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "promotectl",
	Short: "Promotectl resolves the source and destination of a container image promotion.",
}

func main() {
	configureLogging()

	cfg, err := config.NewConfigFromPath("./promotectl.yaml")
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	var placeholdersService *placeholders.Service
	gitRepoInfo, err := git.NewRepositoryInfoService(".")
	if err != nil {
		slog.Debug("no git repository found, git placeholders disabled", "error", err)
		placeholdersService = placeholders.NewService(nil)
	} else {
		placeholdersService = placeholders.NewService(gitRepoInfo)
	}

	locator := factories.NewSharedServicesLocator(cfg, placeholdersService)

	RootCmd.AddCommand(promote.NewPromoteCmd(locator))

	if err := RootCmd.Execute(); err != nil {
		log.Fatal(fmt.Errorf("error executing command: %w", err))
	}
}

func configureLogging() {
	level := slog.LevelInfo
	if raw := os.Getenv(lib.LogLevelEnv); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			log.Fatal(fmt.Errorf("invalid %s value %q: %w", lib.LogLevelEnv, raw, err))
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
