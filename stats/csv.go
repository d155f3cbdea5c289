package stats

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSV is a Sink writing one row per probe sample: time, probe name, value
// Profiles are written as one row per slice
type CSV struct {
	w        *csv.Writer
	probes   []string
	profiles []string
	err      error
}

// NewCSV writes a header and returns the sink
func NewCSV(w io.Writer, probes, profiles []string) *CSV {
	c := &CSV{w: csv.NewWriter(w), probes: probes, profiles: profiles}
	c.write("t", "series", "slice", "value")
	return c
}

func (c *CSV) PushValue(probe int, t, v float64) {
	c.write(formatFloat(t), name(c.probes, probe), "", formatFloat(v))
}

func (c *CSV) PushProfile(profile int, t float64, bins map[int]float64) {
	ts, n := formatFloat(t), name(c.profiles, profile)
	for _, k := range SortedKeys(bins) {
		c.write(ts, n, strconv.Itoa(k), formatFloat(bins[k]))
	}
}

func (c *CSV) Flush(float64) {
	c.w.Flush()
	if c.err == nil {
		c.err = c.w.Error()
	}
}

// Err returns the first write error
func (c *CSV) Err() error {
	return c.err
}

func (c *CSV) write(fields ...string) {
	if c.err != nil {
		return
	}
	c.err = c.w.Write(fields)
}

func name(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return strconv.Itoa(i)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
