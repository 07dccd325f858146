package chartjs

import (
	"math"
)

const (
	ColorGreen     = "#4caf50d4"
	ColorDarkGreen = "#2e7d32d4"
	ColorOrange    = "#ff9800d4"
	ColorRed       = "#f44336d4"
	ColorBlue      = "#2196f3d4"
	ColorPurple    = "#9c27b0d4"
)

// NewChart builds an empty chart of the given type ("bar" or "line") over
// the labels. Datasets are appended with AddDataset.
func NewChart(chartType, title string, labels []string) Chart {
	chart := Chart{
		Type: chartType,
		Data: ChartData{
			Labels: labels,
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true},
				Title:  ChartTitle{Display: false},
			},
			Scales: map[string]ChartScale{
				"y": {
					Type:    "linear",
					Display: true,
					Title:   ChartScaleTitle{Display: false},
				},
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

// AddDataset appends one series. Nil points render as gaps.
func (c *Chart) AddDataset(label, color string, data []*float64) {
	c.Data.Datasets = append(c.Data.Datasets, ChartDataset{
		Label:           label,
		Data:            data,
		BorderWidth:     1,
		Tension:         0.4,
		BorderColor:     color,
		BackgroundColor: color,
	})
}

func (c *Chart) WithAxisTitle(title string) {
	scale := c.Options.Scales["y"]
	scale.Title = ChartScaleTitle{Display: true, Text: title}
	c.Options.Scales["y"] = scale
}

func (cs ChartScale) WithTitle(title string) ChartScale {
	cs.Title.Text = title
	return cs
}

func (cs ChartScale) WithMinAndMax(min, max float64) ChartScale {
	cs.Min = &min
	cs.Max = &max
	return cs
}

func FixedFloat64(num float64, precision int) *float64 {
	p := math.Pow(10, float64(precision))
	rounded := math.Round(num * p)
	result := rounded / p
	return &result
}
