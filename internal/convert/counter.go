package convert

import (
	"sort"

	"github.com/jriceoh2020/applehealthexport/internal/csvout"
	"github.com/jriceoh2020/applehealthexport/internal/healthxml"
)

// countingSink tallies rows per output bucket without writing anything.
// It backs the inspect command.
type countingSink struct {
	counts map[string]int
}

func newCountingSink() *countingSink {
	return &countingSink{counts: make(map[string]int)}
}

func (c *countingSink) Record(r healthxml.Record) error {
	c.counts[healthxml.FriendlyName(r.Type)]++
	return nil
}

func (c *countingSink) Workout(healthxml.Workout) error {
	c.counts[csvout.FileWorkouts]++
	return nil
}

func (c *countingSink) ActivitySummary(healthxml.ActivitySummary) error {
	c.counts[csvout.FileActivitySummary]++
	return nil
}

func (c *countingSink) BloodPressure(healthxml.BloodPressure) error {
	c.counts[csvout.FileBloodPressure]++
	return nil
}

func (c *countingSink) Profile(healthxml.Profile) error {
	c.counts[csvout.FileProfile]++
	return nil
}

func (c *countingSink) names() []string {
	names := make([]string, 0, len(c.counts))
	for name := range c.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
