// Package reports renders briefings as standalone HTML documents with
// embedded charts, suitable for archiving and serving.
package reports

import (
	"bytes"
	"fmt"

	"skybrief/internal/briefing"
	"skybrief/internal/logger"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Generator converts briefings into complete HTML reports.
type Generator struct {
	log *logger.Logger
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{
		log: logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// GenerateHTML renders the briefing's markdown plus charts into one
// self-contained HTML document. Chart failures degrade to a placeholder
// rather than failing the report.
func (g *Generator) GenerateHTML(b *briefing.DailyBriefing) (string, error) {
	content := g.markdownToHTML(BuildMarkdown(b))

	scoreChart := ""
	if b.Score.Available {
		var err error
		scoreChart, err = g.generateScoreChart(b)
		if err != nil {
			g.log.Warn("score chart failed", map[string]interface{}{"error": err.Error()})
			scoreChart = "<p>Score breakdown chart unavailable</p>"
		}
	}

	kpChart := ""
	if b.Sky.SpaceWeather.Available() && len(b.Sky.SpaceWeather.Data.Forecast) > 0 {
		var err error
		kpChart, err = g.generateKpForecastChart(b)
		if err != nil {
			g.log.Warn("Kp chart failed", map[string]interface{}{"error": err.Error()})
			kpChart = "<p>Kp forecast chart unavailable</p>"
		}
	}

	return g.buildCompleteHTML(b, content, scoreChart, kpChart), nil
}

func (g *Generator) markdownToHTML(markdownText string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(markdownText))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return string(markdown.Render(doc, renderer))
}

// generateScoreChart renders the factor breakdown as a bar chart.
func (g *Generator) generateScoreChart(b *briefing.DailyBriefing) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Viewing Score Breakdown",
			Subtitle: fmt.Sprintf("%s: %d/100", b.Score.Category, b.Score.Score),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Score",
		}),
	)

	xAxis := make([]string, 0, len(b.Score.Factors))
	scoreData := make([]opts.BarData, 0, len(b.Score.Factors))
	contribData := make([]opts.BarData, 0, len(b.Score.Factors))
	for _, f := range b.Score.Factors {
		xAxis = append(xAxis, f.Name)
		scoreData = append(scoreData, opts.BarData{Value: f.Score})
		contribData = append(contribData, opts.BarData{Value: f.Weighted})
	}

	bar.SetXAxis(xAxis).
		AddSeries("Factor score", scoreData).
		AddSeries("Weighted contribution", contribData)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// generateKpForecastChart renders the Kp forecast as a line chart.
func (g *Generator) generateKpForecastChart(b *briefing.DailyBriefing) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Planetary K Index Forecast",
			Subtitle: "Kp 5 and above means storm conditions and possible aurora",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Time (UTC)",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Kp",
		}),
	)

	forecast := b.Sky.SpaceWeather.Data.Forecast
	xAxis := make([]string, 0, len(forecast))
	kpData := make([]opts.LineData, 0, len(forecast))
	for _, f := range forecast {
		xAxis = append(xAxis, f.Time.Format("Jan 2 15:04"))
		kpData = append(kpData, opts.LineData{Value: f.Kp})
	}

	line.SetXAxis(xAxis).
		AddSeries("Forecast Kp", kpData).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: true}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (g *Generator) buildCompleteHTML(b *briefing.DailyBriefing, content, scoreChart, kpChart string) string {
	title := fmt.Sprintf("Sky Briefing - %s", b.Date.Format("2006-01-02"))

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #e8e8f0;
            max-width: 1000px;
            margin: 0 auto;
            padding: 20px;
            background-color: #10101c;
        }
        .header {
            background: linear-gradient(135deg, #1b2a4a 0%%, #3b1d5a 100%%);
            color: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            text-align: center;
        }
        .header h1 { margin: 0; }
        .content {
            background: #1a1a2a;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
        }
        .chart { margin: 30px 0; background: #ffffff; border-radius: 10px; padding: 10px; }
        table { border-collapse: collapse; }
        th, td { border: 1px solid #39395a; padding: 6px 12px; }
        a { color: #8ab4ff; }
        .footer { text-align: center; color: #8888a0; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
        <p>Generated %s</p>
    </div>
    <div class="content">%s</div>
    <div class="chart">%s</div>
    <div class="chart">%s</div>
    <div class="footer">Times are UTC. Event times are approximate.</div>
</body>
</html>`,
		title, title, b.GeneratedAt.Format("2006-01-02 15:04 UTC"), content, scoreChart, kpChart)
}
