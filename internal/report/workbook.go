package report

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const chartAnchor = "E2"

// WriteWorkbook saves charts to an .xlsx file, one sheet per chart. Each sheet holds
// the chart's data table in columns A onward and the rendered chart beside it.
func WriteWorkbook(path string, charts []Chart) error {
	if len(charts) == 0 {
		return errors.New("writing workbook: no charts")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, c := range charts {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), c.Sheet); err != nil {
				return fmt.Errorf("naming sheet %s: %w", c.Sheet, err)
			}
		} else if _, err := f.NewSheet(c.Sheet); err != nil {
			return fmt.Errorf("adding sheet %s: %w", c.Sheet, err)
		}
		if err := writeChart(f, c); err != nil {
			return fmt.Errorf("sheet %s: %w", c.Sheet, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeChart(f *excelize.File, c Chart) error {
	header := []interface{}{"Segment", c.Bars.Name}
	for _, l := range c.Lines {
		header = append(header, l.Name)
	}
	if err := f.SetSheetRow(c.Sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, seg := range c.Segments {
		row := []interface{}{seg, c.Bars.Values[i]}
		for _, l := range c.Lines {
			row = append(row, l.Values[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(c.Sheet, cell, &row); err != nil {
			return fmt.Errorf("writing segment %d: %w", seg, err)
		}
	}

	last := len(c.Segments) + 1
	categories := cellRange(c.Sheet, 1, last)
	bars := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       seriesName(c.Sheet, 2),
			Categories: categories,
			Values:     cellRange(c.Sheet, 2, last),
		}},
		Title:     []excelize.RichTextRun{{Text: c.Title}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: c.XTitle}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: c.YTitle}}},
		Dimension: excelize.ChartDimension{Width: 720, Height: 432},
	}
	if len(c.Lines) == 0 {
		return f.AddChart(c.Sheet, chartAnchor, bars)
	}

	lines := &excelize.Chart{Type: excelize.Line}
	for i := range c.Lines {
		col := 3 + i
		lines.Series = append(lines.Series, excelize.ChartSeries{
			Name:       seriesName(c.Sheet, col),
			Categories: categories,
			Values:     cellRange(c.Sheet, col, last),
		})
	}
	return f.AddChart(c.Sheet, chartAnchor, bars, lines)
}

func seriesName(sheet string, col int) string {
	name, _ := excelize.CoordinatesToCellName(col, 1, true)
	return fmt.Sprintf("'%s'!%s", sheet, name)
}

func cellRange(sheet string, col, lastRow int) string {
	from, _ := excelize.CoordinatesToCellName(col, 2, true)
	to, _ := excelize.CoordinatesToCellName(col, lastRow, true)
	return fmt.Sprintf("'%s'!%s:%s", sheet, from, to)
}
