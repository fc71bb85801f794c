package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gridstats/internal"
)

// exportColumns is the flat-table header: stat fields, game context fields,
// then the perspective-specific fields. The spread columns hold the record's
// re-attributed values, not the raw box-score-frame ones.
var exportColumns = []string{
	"team",
	"rush_att", "rush_yds", "rush_tds",
	"pass_cmp", "pass_att", "pass_yds", "pass_tds", "pass_int",
	"passer_rating", "net_pass_yds", "total_yds",
	"times_sacked", "yds_sacked_for",
	"fumbles", "fumbles_lost", "turnovers",
	"penalties", "penalty_yds", "first_downs",
	"third_down_conv", "third_down_att", "third_down_conv_pct",
	"fourth_down_conv", "fourth_down_att", "fourth_down_conv_pct",
	"time_of_possession",
	"tm_spread", "opp_spread", "total", "attendance", "duration",
	"roof_type", "surface_type",
	"won_toss", "won_toss_decision", "won_toss_overtime", "won_toss_overtime_decision",
	"temperature", "humidity_pct", "wind_speed",
	"opponent", "tm_location", "opp_location",
	"tm_score", "opp_score", "week", "event_date",
}

func exportRow(rec internal.PerspectiveRecord) []any {
	s, m := rec.Stats, rec.Meta
	return []any{
		rec.Team,
		s.RushAtt, s.RushYds, s.RushTds,
		s.PassCmp, s.PassAtt, s.PassYds, s.PassTds, s.PassInt,
		s.PasserRating, s.NetPassYds, s.TotalYds,
		s.TimesSacked, s.YdsSackedFor,
		s.Fumbles, s.FumblesLost, s.Turnovers,
		s.Penalties, s.PenaltyYds, s.FirstDowns,
		s.ThirdDownConv, s.ThirdDownAtt, s.ThirdDownConvPct,
		s.FourthDownConv, s.FourthDownAtt, s.FourthDownConvPct,
		s.TimeOfPossession,
		rec.TmSpread, rec.OppSpread, m.Total, m.Attendance, m.Duration,
		m.RoofType, m.SurfaceType,
		m.WonToss, m.WonTossDecision, m.WonTossOvertime, m.WonTossOvertimeDecision,
		m.Temperature, m.HumidityPct, m.WindSpeed,
		rec.Opponent, rec.TmLocation, rec.OppLocation,
		rec.TmScore, rec.OppScore, rec.Week, rec.EventDate,
	}
}

// ExportXLSX writes one row per perspective record to a spreadsheet.
func ExportXLSX(records []internal.PerspectiveRecord, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		for col, value := range exportRow(rec) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ExportCSV writes the same flat table as a delimited file.
func ExportCSV(records []internal.PerspectiveRecord, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportColumns); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, 0, len(exportColumns))
		for _, value := range exportRow(rec) {
			row = append(row, formatCSV(value))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatCSV(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case float64:
		return trimFloat(t)
	case int:
		return fmt.Sprintf("%d", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
