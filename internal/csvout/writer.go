// Package csvout writes mapped health rows to RFC 4180 CSV files.
//
// One file per logical record type, created lazily on the first row so that
// an export with no data of a given type produces no file for it. Rows are
// appended in input order.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jriceoh2020/applehealthexport/internal/healthxml"
)

// Fixed output file base names.
const (
	FileWorkouts        = "workouts"
	FileActivitySummary = "activity_summary"
	FileBloodPressure   = "blood_pressure"
	FileProfile         = "profile"
	FileCombined        = "records"
)

var (
	recordHeader   = []string{"source", "value", "unit", "start_date", "end_date", "creation_date"}
	combinedHeader = []string{"type", "source", "value", "unit", "start_date", "end_date", "creation_date"}
	workoutHeader  = []string{"activity_type", "duration", "duration_unit", "total_distance",
		"distance_unit", "total_energy_burned", "energy_unit", "source", "start_date", "end_date"}
	summaryHeader = []string{"date", "active_energy_burned", "active_energy_burned_goal",
		"exercise_time", "exercise_time_goal", "stand_hours", "stand_hours_goal"}
	bpHeader      = []string{"systolic", "diastolic", "unit", "source", "start_date", "end_date"}
	profileHeader = []string{"date_of_birth", "biological_sex", "blood_type", "skin_type"}
)

// Options configures a Writer.
type Options struct {
	// Dir is the output directory; it must exist.
	Dir string
	// Combined writes all Record rows to a single records.csv with a type
	// column instead of one file per type.
	Combined bool
	// NameOverrides maps HealthKit type identifiers to output file names,
	// taking precedence over the built-in table.
	NameOverrides map[string]string
}

// Writer fans mapped rows out to per-type CSV files. It implements
// healthxml.Sink.
type Writer struct {
	opts  Options
	files map[string]*fileSink
}

type fileSink struct {
	path string
	f    *os.File
	w    *csv.Writer
	rows int
}

// New returns a Writer targeting opts.Dir. Close must be called to flush.
func New(opts Options) *Writer {
	return &Writer{opts: opts, files: make(map[string]*fileSink)}
}

// Record writes one health record row, bucketed by friendly type name.
func (w *Writer) Record(r healthxml.Record) error {
	if w.opts.Combined {
		return w.write(FileCombined, combinedHeader,
			[]string{w.name(r.Type), r.Source, r.Value, r.Unit, r.StartDate, r.EndDate, r.CreationDate})
	}
	return w.write(w.name(r.Type), recordHeader,
		[]string{r.Source, r.Value, r.Unit, r.StartDate, r.EndDate, r.CreationDate})
}

// Workout writes one workout row.
func (w *Writer) Workout(wk healthxml.Workout) error {
	return w.write(FileWorkouts, workoutHeader,
		[]string{wk.ActivityType, wk.Duration, wk.DurationUnit, wk.TotalDistance,
			wk.DistanceUnit, wk.TotalEnergy, wk.EnergyUnit, wk.Source, wk.StartDate, wk.EndDate})
}

// ActivitySummary writes one daily summary row.
func (w *Writer) ActivitySummary(s healthxml.ActivitySummary) error {
	return w.write(FileActivitySummary, summaryHeader,
		[]string{s.Date, s.ActiveEnergy, s.ActiveEnergyGoal, s.ExerciseTime,
			s.ExerciseTimeGoal, s.StandHours, s.StandHoursGoal})
}

// BloodPressure writes one assembled blood-pressure row.
func (w *Writer) BloodPressure(bp healthxml.BloodPressure) error {
	return w.write(FileBloodPressure, bpHeader,
		[]string{bp.Systolic, bp.Diastolic, bp.Unit, bp.Source, bp.StartDate, bp.EndDate})
}

// Profile writes the profile row.
func (w *Writer) Profile(p healthxml.Profile) error {
	return w.write(FileProfile, profileHeader,
		[]string{p.DateOfBirth, p.BiologicalSex, p.BloodType, p.SkinType})
}

func (w *Writer) name(hkType string) string {
	if name, ok := w.opts.NameOverrides[hkType]; ok {
		return name
	}
	return healthxml.FriendlyName(hkType)
}

func (w *Writer) write(name string, header, row []string) error {
	sink, ok := w.files[name]
	if !ok {
		var err error
		sink, err = w.open(name, header)
		if err != nil {
			return err
		}
		w.files[name] = sink
	}
	if err := sink.w.Write(row); err != nil {
		return fmt.Errorf("write %s: %w", sink.path, err)
	}
	sink.rows++
	return nil
}

func (w *Writer) open(name string, header []string) (*fileSink, error) {
	path := filepath.Join(w.opts.Dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	sink := &fileSink{path: path, f: f, w: csv.NewWriter(f)}
	if err := sink.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return sink, nil
}

// Counts returns rows written per output file base name, headers excluded.
func (w *Writer) Counts() map[string]int {
	counts := make(map[string]int, len(w.files))
	for name, sink := range w.files {
		counts[name] = sink.rows
	}
	return counts
}

// Files returns the base names of all files written, sorted.
func (w *Writer) Files() []string {
	names := make([]string, 0, len(w.files))
	for name := range w.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close flushes and closes every output file, returning the first error.
func (w *Writer) Close() error {
	var firstErr error
	for _, sink := range w.files {
		sink.w.Flush()
		if err := sink.w.Error(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("flush %s: %w", sink.path, err)
		}
		if err := sink.f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", sink.path, err)
		}
	}
	return firstErr
}
