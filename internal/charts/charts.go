// Package charts renders the dashboard summary charts as PNG images:
// a bar chart and a pie chart of the amount summed by category.
package charts

import (
	"bytes"
	"fmt"
	"math"

	"billscan/internal/core"

	"github.com/fogleman/gg"
)

// Fixed palette in category presentation order.
var palette = map[core.Category][3]float64{
	core.Food:     {0.26, 0.52, 0.96},
	core.Travel:   {0.92, 0.26, 0.21},
	core.Shopping: {0.98, 0.74, 0.02},
	core.Bills:    {0.20, 0.66, 0.33},
	core.Other:    {0.56, 0.27, 0.68},
}

func colorFor(c core.Category) (r, g, b float64) {
	if rgb, ok := palette[c]; ok {
		return rgb[0], rgb[1], rgb[2]
	}
	return 0.5, 0.5, 0.5
}

// CategoryBar draws a bar chart of per-category totals. An empty
// summary renders a placeholder note instead of axes.
func CategoryBar(s core.Summary, width, height int) ([]byte, error) {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if len(s.ByCategory) == 0 {
		return emptyChart(dc, "No expenses yet")
	}

	const (
		marginX = 24.0
		topY    = 28.0
		labelH  = 28.0
	)
	plotW := float64(width) - 2*marginX
	plotH := float64(height) - topY - labelH

	maxAmount := 0.0
	for _, row := range s.ByCategory {
		if v, _ := row.Amount.Float64(); v > maxAmount {
			maxAmount = v
		}
	}
	if maxAmount <= 0 {
		return emptyChart(dc, "No expenses yet")
	}

	n := float64(len(s.ByCategory))
	slot := plotW / n
	barW := slot * 0.6

	dc.SetRGB(0.15, 0.15, 0.15)
	dc.DrawStringAnchored("Expenses by Category", float64(width)/2, topY/2, 0.5, 0.5)

	for i, row := range s.ByCategory {
		v, _ := row.Amount.Float64()
		h := plotH * v / maxAmount
		x := marginX + float64(i)*slot + (slot-barW)/2
		y := topY + plotH - h

		r, g, b := colorFor(row.Category)
		dc.SetRGB(r, g, b)
		dc.DrawRectangle(x, y, barW, h)
		dc.Fill()

		dc.SetRGB(0.15, 0.15, 0.15)
		dc.DrawStringAnchored(string(row.Category), x+barW/2, topY+plotH+labelH/2, 0.5, 0.5)
		dc.DrawStringAnchored(core.FormatAmount(row.Amount), x+barW/2, y-8, 0.5, 0.5)
	}

	return encodePNG(dc)
}

// CategoryPie draws a pie chart of the category distribution.
func CategoryPie(s core.Summary, width, height int) ([]byte, error) {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	total, _ := s.Total.Float64()
	if len(s.ByCategory) == 0 || total <= 0 {
		return emptyChart(dc, "No expenses yet")
	}

	cx := float64(width) / 2
	cy := float64(height)/2 + 10
	radius := math.Min(cx, cy) - 36

	dc.SetRGB(0.15, 0.15, 0.15)
	dc.DrawStringAnchored("Category Distribution", cx, 14, 0.5, 0.5)

	angle := -math.Pi / 2
	for _, row := range s.ByCategory {
		v, _ := row.Amount.Float64()
		sweep := 2 * math.Pi * v / total

		r, g, b := colorFor(row.Category)
		dc.SetRGB(r, g, b)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, angle+sweep)
		dc.ClosePath()
		dc.Fill()

		// Label on the slice midpoint, outside the rim.
		mid := angle + sweep/2
		lx := cx + (radius+18)*math.Cos(mid)
		ly := cy + (radius+18)*math.Sin(mid)
		dc.SetRGB(0.15, 0.15, 0.15)
		dc.DrawStringAnchored(string(row.Category), lx, ly, 0.5, 0.5)

		angle += sweep
	}

	return encodePNG(dc)
}

func emptyChart(dc *gg.Context, note string) ([]byte, error) {
	dc.SetRGB(0.5, 0.5, 0.5)
	dc.DrawStringAnchored(note, float64(dc.Width())/2, float64(dc.Height())/2, 0.5, 0.5)
	return encodePNG(dc)
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
