package harness

import (
	"testing"
)

func TestScenario_ThreeWeekDecline(t *testing.T) {
	RunScenario(t, "testdata/three_week_decline.yaml")
}

func TestScenario_RisingWeekOverWeek(t *testing.T) {
	RunScenario(t, "testdata/rising_week_over_week.yaml")
}
