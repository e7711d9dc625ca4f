package csvout

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jriceoh2020/applehealthexport/internal/healthxml"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriterBucketsRecordsByType(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{Dir: dir})

	require.NoError(t, w.Record(healthxml.Record{
		Type: "HKQuantityTypeIdentifierStepCount", Source: "Watch", Value: "312",
		Unit: "count", StartDate: "2025-11-27 08:00:00", EndDate: "2025-11-27 08:10:00",
		CreationDate: "2025-11-27 08:11:00",
	}))
	require.NoError(t, w.Record(healthxml.Record{
		Type: "HKQuantityTypeIdentifierStepCount", Source: "Watch", Value: "100",
	}))
	require.NoError(t, w.Record(healthxml.Record{
		Type: "HKQuantityTypeIdentifierHeartRate", Source: "Watch", Value: "62",
	}))
	require.NoError(t, w.Close())

	steps := readCSV(t, filepath.Join(dir, "steps.csv"))
	require.Len(t, steps, 3)
	assert.Equal(t, []string{"source", "value", "unit", "start_date", "end_date", "creation_date"}, steps[0])
	assert.Equal(t, []string{"Watch", "312", "count", "2025-11-27 08:00:00", "2025-11-27 08:10:00", "2025-11-27 08:11:00"}, steps[1])
	assert.Equal(t, []string{"Watch", "100", "", "", "", ""}, steps[2])

	hr := readCSV(t, filepath.Join(dir, "heart_rate.csv"))
	require.Len(t, hr, 2)

	assert.Equal(t, map[string]int{"steps": 2, "heart_rate": 1}, w.Counts())
	assert.Equal(t, []string{"heart_rate", "steps"}, w.Files())
}

func TestWriterFixedFiles(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{Dir: dir})

	require.NoError(t, w.Workout(healthxml.Workout{
		ActivityType: "Walking", Duration: "31.5", DurationUnit: "min",
		TotalDistance: "2.1", DistanceUnit: "km", TotalEnergy: "120", EnergyUnit: "kcal",
		Source: "Watch", StartDate: "a", EndDate: "b",
	}))
	require.NoError(t, w.ActivitySummary(healthxml.ActivitySummary{
		Date: "2025-11-27", ActiveEnergy: "430", ActiveEnergyGoal: "500",
		ExerciseTime: "32", ExerciseTimeGoal: "30", StandHours: "11", StandHoursGoal: "12",
	}))
	require.NoError(t, w.BloodPressure(healthxml.BloodPressure{
		Systolic: "118", Diastolic: "76", Unit: "mmHg", Source: "Cuff", StartDate: "a", EndDate: "b",
	}))
	require.NoError(t, w.Profile(healthxml.Profile{
		DateOfBirth: "1984-03-01", BiologicalSex: "Male", BloodType: "Not Set", SkinType: "Not Set",
	}))
	require.NoError(t, w.Close())

	workouts := readCSV(t, filepath.Join(dir, "workouts.csv"))
	require.Len(t, workouts, 2)
	assert.Equal(t, "activity_type", workouts[0][0])
	assert.Equal(t, []string{"Walking", "31.5", "min", "2.1", "km", "120", "kcal", "Watch", "a", "b"}, workouts[1])

	summary := readCSV(t, filepath.Join(dir, "activity_summary.csv"))
	assert.Equal(t, []string{"2025-11-27", "430", "500", "32", "30", "11", "12"}, summary[1])

	bp := readCSV(t, filepath.Join(dir, "blood_pressure.csv"))
	assert.Equal(t, []string{"118", "76", "mmHg", "Cuff", "a", "b"}, bp[1])

	profile := readCSV(t, filepath.Join(dir, "profile.csv"))
	assert.Equal(t, []string{"1984-03-01", "Male", "Not Set", "Not Set"}, profile[1])
}

func TestWriterEscaping(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{Dir: dir})

	require.NoError(t, w.Record(healthxml.Record{
		Type:   "HKQuantityTypeIdentifierStepCount",
		Source: `Bob's "iPhone", old`,
		Value:  "line one\nline two",
	}))
	require.NoError(t, w.Close())

	rows := readCSV(t, filepath.Join(dir, "steps.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, `Bob's "iPhone", old`, rows[1][0])
	assert.Equal(t, "line one\nline two", rows[1][1])
}

func TestWriterCombinedMode(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{Dir: dir, Combined: true})

	require.NoError(t, w.Record(healthxml.Record{
		Type: "HKQuantityTypeIdentifierStepCount", Value: "312",
	}))
	require.NoError(t, w.Record(healthxml.Record{
		Type: "HKQuantityTypeIdentifierHeartRate", Value: "62",
	}))
	require.NoError(t, w.Close())

	rows := readCSV(t, filepath.Join(dir, "records.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, "type", rows[0][0])
	assert.Equal(t, "steps", rows[1][0])
	assert.Equal(t, "heart_rate", rows[2][0])

	_, err := os.Stat(filepath.Join(dir, "steps.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriterNameOverrides(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{Dir: dir, NameOverrides: map[string]string{
		"HKQuantityTypeIdentifierStepCount": "step_count",
	}})

	require.NoError(t, w.Record(healthxml.Record{
		Type: "HKQuantityTypeIdentifierStepCount", Value: "312",
	}))
	require.NoError(t, w.Close())

	_, err := os.Stat(filepath.Join(dir, "step_count.csv"))
	assert.NoError(t, err)
}

func TestWriterNoRowsNoFiles(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{Dir: dir})
	require.NoError(t, w.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriterCreateError(t *testing.T) {
	w := New(Options{Dir: filepath.Join(t.TempDir(), "missing", "nested")})

	err := w.Record(healthxml.Record{Type: "HKQuantityTypeIdentifierStepCount"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
	require.NoError(t, w.Close())
}
