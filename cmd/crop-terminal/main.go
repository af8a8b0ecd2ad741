package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	"go.uber.org/zap"

	"github.com/croplens/crop-terminal/internal/analysis"
	"github.com/croplens/crop-terminal/internal/config"
	"github.com/croplens/crop-terminal/internal/cropmap"
	"github.com/croplens/crop-terminal/internal/database"
	"github.com/croplens/crop-terminal/internal/geocoding"
	"github.com/croplens/crop-terminal/internal/ui"
)

func main() {
	var cli config.CLI
	kctx := kong.Parse(&cli,
		kong.Name("crop-terminal"),
		kong.Description("Terminal field-analysis map over USDA crop boundaries."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	if err := config.InitLogger(cli.Debug, cli.LogFile); err != nil {
		kctx.FatalIfErrorf(err)
	}
	defer zap.L().Sync()

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = database.DBPath()
	}

	// The first run downloads and builds the boundary database, which
	// can take minutes. It happens before the UI takes the terminal.
	if needed, err := cropmap.NeedsProvisioning(dbPath); err == nil && needed {
		fmt.Println("First run: downloading USDA field boundaries (this may take a few minutes)...")
	}

	store, err := cropmap.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening field database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	m := ui.NewModel(ui.Config{
		Store:        store,
		Searcher:     geocoding.NewSearcher(cli.GeocodeURL),
		Analysis:     analysis.NewClient(cli.AnalysisURL),
		StartAddress: cli.Address,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
