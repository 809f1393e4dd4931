package services

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/yungbote/maturity-backend/internal/scoring"
	"golang.org/x/image/font"
)

const (
	chartWidth      = 900
	chartPadding    = 24.0
	chartHeaderH    = 72.0
	chartRowH       = 44.0
	chartLabelW     = 260.0
	chartValueW     = 80.0
	chartBarHeight  = 26.0
	chartTitleSize  = 20.0
	chartLabelSize  = 14.0
	chartMaxPercent = 100.0
)

var (
	chartBackground = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	chartText       = color.NRGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}
	chartTrack      = color.NRGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF}

	// indexed by maturity level 1..5
	chartLevelColors = []color.NRGBA{
		{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF},
		{R: 0xDC, G: 0x26, B: 0x26, A: 0xFF},
		{R: 0xEA, G: 0x58, B: 0x0C, A: 0xFF},
		{R: 0xCA, G: 0x8A, B: 0x04, A: 0xFF},
		{R: 0x65, G: 0xA3, B: 0x0D, A: 0xFF},
		{R: 0x16, G: 0xA3, B: 0x4A, A: 0xFF},
	}
)

func levelColor(level int) color.NRGBA {
	if level < 1 || level >= len(chartLevelColors) {
		return chartLevelColors[0]
	}
	return chartLevelColors[level]
}

func chartFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// renderDomainChart draws one horizontal bar per domain of the breakdown,
// coloured by the domain's maturity level.
func renderDomainChart(f *truetype.Font, report *scoring.Report) (*bytes.Buffer, error) {
	rows := len(report.DomainBreakdown)
	height := int(chartHeaderH + chartPadding*2 + float64(rows)*chartRowH)

	dc := gg.NewContext(chartWidth, height)
	dc.SetColor(chartBackground)
	dc.Clear()

	title := "Maturity assessment"
	if report.Assessment != nil && report.Assessment.TeamName != "" {
		title = report.Assessment.TeamName
	}
	overall := 0.0
	if report.Assessment != nil && report.Assessment.OverallScore != nil {
		overall = *report.Assessment.OverallScore
	}

	dc.SetColor(chartText)
	dc.SetFontFace(chartFace(f, chartTitleSize))
	dc.DrawString(title, chartPadding, chartPadding+chartTitleSize)
	dc.SetFontFace(chartFace(f, chartLabelSize))
	dc.DrawString(
		fmt.Sprintf("Overall %.2f%% - Level %d %s", overall, report.MaturityLevel.Level, report.MaturityLevel.Name),
		chartPadding, chartPadding+chartTitleSize+chartLabelSize+10,
	)

	barX := chartPadding + chartLabelW
	barMaxW := float64(chartWidth) - barX - chartValueW - chartPadding
	for i, d := range report.DomainBreakdown {
		y := chartPadding + chartHeaderH + float64(i)*chartRowH
		mid := y + chartBarHeight/2

		dc.SetColor(chartText)
		dc.DrawStringAnchored(d.Domain, chartPadding, mid, 0, 0.35)

		dc.SetColor(chartTrack)
		dc.DrawRoundedRectangle(barX, y, barMaxW, chartBarHeight, 4)
		dc.Fill()

		pct := d.Score
		if pct < 0 {
			pct = 0
		}
		if pct > chartMaxPercent {
			pct = chartMaxPercent
		}
		if w := barMaxW * pct / chartMaxPercent; w > 0 {
			dc.SetColor(levelColor(d.MaturityLevel))
			dc.DrawRoundedRectangle(barX, y, w, chartBarHeight, 4)
			dc.Fill()
		}

		dc.SetColor(chartText)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", d.Score), barX+barMaxW+10, mid, 0, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart PNG: %w", err)
	}
	return &buf, nil
}
