// Package healthxml parses Apple Health export XML into flat row types.
//
// The export document is streamed element by element; each recognized
// element maps to exactly one row pushed to a Sink. Attribute values are
// carried as strings without unit conversion.
package healthxml

// Record is a single health data point from a <Record> element.
type Record struct {
	Type         string
	Source       string
	Value        string
	Unit         string
	StartDate    string
	EndDate      string
	CreationDate string
}

// Workout is one <Workout> element.
type Workout struct {
	ActivityType  string
	Duration      string
	DurationUnit  string
	TotalDistance string
	DistanceUnit  string
	TotalEnergy   string
	EnergyUnit    string
	Source        string
	StartDate     string
	EndDate       string
}

// ActivitySummary is one <ActivitySummary> element (daily ring data).
type ActivitySummary struct {
	Date             string
	ActiveEnergy     string
	ActiveEnergyGoal string
	ExerciseTime     string
	ExerciseTimeGoal string
	StandHours       string
	StandHoursGoal   string
}

// BloodPressure is one assembled blood-pressure <Correlation>.
// The systolic and diastolic child records are merged into a single row.
type BloodPressure struct {
	Systolic  string
	Diastolic string
	Unit      string
	Source    string
	StartDate string
	EndDate   string
}

// Profile holds the characteristics from the <Me> element.
type Profile struct {
	DateOfBirth   string
	BiologicalSex string
	BloodType     string
	SkinType      string
}

// Sink receives mapped rows in document order. Implementations must not
// retain the row values beyond the call.
type Sink interface {
	Record(Record) error
	Workout(Workout) error
	ActivitySummary(ActivitySummary) error
	BloodPressure(BloodPressure) error
	Profile(Profile) error
}
