package projection

import "github.com/shopspring/decimal"

// Ladder is the fixed set of net-worth thresholds reported on every run,
// in MYR.
var Ladder = []int64{
	500_000,
	800_000,
	1_000_000,
	1_250_000,
	1_500_000,
	2_000_000,
	3_000_000,
	5_000_000,
}

// Milestone is the first crossing of one ladder threshold. Achieved marks
// thresholds the seed point already clears.
type Milestone struct {
	Threshold decimal.Decimal `json:"threshold"`
	Age       int             `json:"age"`
	Year      int             `json:"year"`
	Achieved  bool            `json:"achieved"`
}

// detectMilestones walks the ladder against the point sequence. Thresholds
// never reached within the run are omitted.
func detectMilestones(points []Point) []Milestone {
	if len(points) == 0 {
		return nil
	}

	var milestones []Milestone
	seed := points[0]
	for _, t := range Ladder {
		threshold := decimal.NewFromInt(t)

		if seed.Total.GreaterThanOrEqual(threshold) {
			milestones = append(milestones, Milestone{
				Threshold: threshold,
				Age:       seed.Age,
				Year:      seed.Year,
				Achieved:  true,
			})
			continue
		}

		for _, p := range points[1:] {
			if p.Total.GreaterThanOrEqual(threshold) {
				milestones = append(milestones, Milestone{
					Threshold: threshold,
					Age:       p.Age,
					Year:      p.Year,
				})
				break
			}
		}
	}
	return milestones
}
