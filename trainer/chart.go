package trainer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
)

// writeChart renders the share of wins and draws per checkpoint interval as
// a line chart.
func writeChart(path string, runID uuid.UUID, checkpoints []Checkpoint) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Self-play outcomes",
			Subtitle: runID.String(),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	episodes := make([]string, 0, len(checkpoints))
	winsA := make([]opts.LineData, 0, len(checkpoints))
	winsB := make([]opts.LineData, 0, len(checkpoints))
	draws := make([]opts.LineData, 0, len(checkpoints))

	previous := Checkpoint{}
	for _, cp := range checkpoints {
		// Rates over the interval since the previous checkpoint
		played := float64(cp.Results.Total() - previous.Results.Total())
		if played == 0 {
			continue
		}
		episodes = append(episodes, strconv.Itoa(cp.Episode))
		winsA = append(winsA, opts.LineData{Value: float64(cp.Results.WinsA-previous.Results.WinsA) / played})
		winsB = append(winsB, opts.LineData{Value: float64(cp.Results.WinsB-previous.Results.WinsB) / played})
		draws = append(draws, opts.LineData{Value: float64(cp.Results.Draws-previous.Results.Draws) / played})
		previous = cp
	}

	line.SetXAxis(episodes).
		AddSeries("PlayerA wins", winsA).
		AddSeries("PlayerB wins", winsB).
		AddSeries("Draws", draws)

	page := components.NewPage()
	page.AddCharts(line)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
