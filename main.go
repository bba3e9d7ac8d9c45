package main

import (
	"encoding/json"
	"fmt"
	"os"

	"traceplay/internal/export"
	"traceplay/internal/model"
	"traceplay/internal/playback"
	"traceplay/internal/traversal"
	"traceplay/internal/tui"
	"traceplay/internal/web"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

// config holds environment-derived defaults; flags override them.
type config struct {
	Input string `env:"TRACEPLAY_INPUT"`
	Port  int    `env:"TRACEPLAY_PORT" envDefault:"8080"`
	Speed string `env:"TRACEPLAY_SPEED" envDefault:"off"`
}

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "traceplay",
		Repository: "traceplay",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/traceplay/traceplay/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: traceplay [options]\n\n")
		fmt.Fprintf(os.Stderr, "traceplay replays graph-traversal traces step by step.\n")
		fmt.Fprintf(os.Stderr, "It aggregates an ordered list of reasoning steps into one graph and\n")
		fmt.Fprintf(os.Stderr, "animates which nodes and relationships each step consulted.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  traceplay -i trace.json         # Play a trace in the terminal\n")
		fmt.Fprintf(os.Stderr, "  traceplay --demo                # Play the built-in sample trace\n")
		fmt.Fprintf(os.Stderr, "  cat trace.json | traceplay -i - # Read the trace from stdin\n")
		fmt.Fprintf(os.Stderr, "  traceplay -i trace.json --json  # Dump the aggregated graph as JSON\n")
		fmt.Fprintf(os.Stderr, "  traceplay -i trace.json --dot   # Export the graph as Graphviz DOT\n")
		fmt.Fprintf(os.Stderr, "  traceplay -i trace.json --web   # Play in the browser\n")
	}

	inputFlag := pflag.StringP("input", "i", cfg.Input, "Trace file (JSON array of records), or - for stdin")
	demoFlag := pflag.Bool("demo", false, "Use the built-in sample trace")
	jsonFlag := pflag.BoolP("json", "j", false, "Output the aggregated graph as JSON")
	dotFlag := pflag.Bool("dot", false, "Output the aggregated graph as Graphviz DOT")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode")
	portFlag := pflag.IntP("port", "p", cfg.Port, "Port for Web Mode")
	speedFlag := pflag.StringP("speed", "s", cfg.Speed, "Initial autoplay speed (off, slow, normal, fast)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("traceplay version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	records, err := loadRecords(*inputFlag, *demoFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		os.Exit(1)
	}

	if *jsonFlag {
		runJSONMode(records)
		return
	}

	if *dotFlag {
		runDotMode(records)
		return
	}

	if *webFlag {
		server := web.NewServer(records)
		if err := server.Start(*portFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting web server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Default: TUI
	runTuiMode(records, parseSpeed(*speedFlag))
}

func loadRecords(input string, demo bool) ([]model.TraversalRecord, error) {
	if demo || input == "" {
		return traversal.DemoRecords(), nil
	}
	return traversal.LoadRecords(input)
}

func parseSpeed(s string) playback.Speed {
	switch s {
	case "slow":
		return playback.SpeedSlow
	case "normal":
		return playback.SpeedNormal
	case "fast":
		return playback.SpeedFast
	}
	return playback.SpeedOff
}

func runJSONMode(records []model.TraversalRecord) {
	graph := traversal.NewAggregator().Aggregate(records)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(graph)
}

func runDotMode(records []model.TraversalRecord) {
	graph := traversal.NewAggregator().Aggregate(records)

	dot, err := export.DOT(graph)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting DOT: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(dot)
}

func runTuiMode(records []model.TraversalRecord, speed playback.Speed) {
	m := tui.InitialModel(records)
	if speed != playback.SpeedOff {
		m.Controller.SetSpeed(speed)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
