// cmd/proofpad/main.go
package main

import (
	"fmt"
	stlog "log" // standard log for fatal errors before the logger is ready
	"os"

	"proofpad/internal/app"
	"proofpad/internal/config"
	"proofpad/internal/logger"
)

var version = "dev"

func main() {
	// --- Flag & Config Parsing ---
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Logger Initialization ---
	// The terminal belongs to tcell, so logs always go to a file.
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogFileName
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", logPath, err)
	}
	defer logFile.Close()
	logger.Init(logger.ParseLevel(cfg.Logger.LogLevel), logFile)

	logger.Infof("Starting %s %s", config.AppName, version)
	logger.Debugf("Analysis service: %s (debounce %v)", cfg.Analysis.BaseURL, cfg.Analysis.Debounce())
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	}

	// --- Create and Run App ---
	padApp, err := app.NewApp(filePath, cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		stlog.Fatalf("Error initializing application: %v", err)
	}

	if err := padApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
