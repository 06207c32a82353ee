// Package main starts the ShopINA terminal storefront.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/atinyakov/shopina/internal/client/api"
	"github.com/atinyakov/shopina/internal/client/session"
	"github.com/atinyakov/shopina/internal/client/state"
	"github.com/atinyakov/shopina/internal/client/ui"
)

var (
	version   string
	buildDate string
)

func main() {
	var (
		baseURL   string
		statePath string
		showVer   bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&statePath, "state", "", "path to the state file (defaults to the user config dir)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("ShopINA Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	if statePath == "" {
		if p, err := session.DefaultPath(); err == nil {
			statePath = p
		}
	}

	// TUI clients log to a file; stderr belongs to the view.
	logger := zap.NewNop()
	if f, err := tea.LogToFile("shopina.log", "debug"); err == nil {
		defer f.Close()
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{f.Name()}
		if built, err := cfg.Build(); err == nil {
			logger = built
		}
	}
	defer func() { _ = logger.Sync() }()

	store := session.Open(statePath)
	app := state.New(store.SessionID(), store)
	client := api.New(baseURL, logger)

	program := tea.NewProgram(ui.New(app, client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "shopina: %v\n", err)
		os.Exit(1)
	}
}
