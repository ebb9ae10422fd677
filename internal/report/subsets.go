package report

import (
	"fmt"
	"path/filepath"

	"github.com/districtops/atttrack/internal/engine"
	"github.com/districtops/atttrack/internal/record"
)

// subsetOrder fixes both which subset CSVs exist and the sheet order in
// the combined workbook. The first four are straight percentage bands, the
// weighted-points group mirrors the district's eligibility point scale, and
// the letters subset feeds the intervention mailing.
var subsetOrder = []string{
	"90_to_100",
	"80_to_90",
	"50_to_80",
	"0_to_50",
	"below_85_zero_weighted_points",
	"85_to_87.5_quarter_weighted_points",
	"87.5_to_90_half_weighted_points",
	"90_and_above_full_weighted_point",
	"Qualify_For_Letters",
	"0_to_80",
}

func (w *Writer) subsetKeep(name string) func(*record.Result) bool {
	threshold := w.Config.FlagThreshold
	pct := func(r *record.Result) float64 { return r.CurrentWeekAttPercent }

	switch name {
	case "90_to_100":
		return func(r *record.Result) bool { return pct(r) >= 90 && pct(r) <= 100 }
	case "80_to_90":
		return func(r *record.Result) bool { return pct(r) >= 80 && pct(r) < 90 }
	case "50_to_80":
		return func(r *record.Result) bool { return pct(r) >= 50 && pct(r) < 80 }
	case "0_to_50":
		return func(r *record.Result) bool { return pct(r) >= 0 && pct(r) < 50 }
	case "below_85_zero_weighted_points":
		return func(r *record.Result) bool { return pct(r) < 85 }
	case "85_to_87.5_quarter_weighted_points":
		return func(r *record.Result) bool { return pct(r) >= 85 && pct(r) < 87.5 }
	case "87.5_to_90_half_weighted_points":
		return func(r *record.Result) bool { return pct(r) >= 87.5 && pct(r) < 90 }
	case "90_and_above_full_weighted_point":
		return func(r *record.Result) bool { return pct(r) >= 90 }
	case "Qualify_For_Letters":
		return func(r *record.Result) bool { return engine.QualifiesForLetter(r, threshold) }
	case "0_to_80":
		// Open at zero: a student with no attendance at all is covered by
		// 0_to_50, not this band.
		return func(r *record.Result) bool { return pct(r) > 0 && pct(r) < 80 }
	}
	return func(*record.Result) bool { return false }
}

// writeSubsets writes one CSV per non-empty subset into the building
// folder, named <subset>_<group>_attendance.csv.
func (w *Writer) writeSubsets(dir, group string, members []*record.Result, cols []string) error {
	for _, name := range subsetOrder {
		keep := w.subsetKeep(name)
		var filtered []*record.Result
		for _, r := range members {
			if keep(r) {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) == 0 {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s_attendance.csv", name, group))
		if err := w.writeCSV(path, filtered, cols); err != nil {
			return err
		}
	}
	return nil
}
