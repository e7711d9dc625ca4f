package healthxml

import (
	"strings"

	"go.uber.org/zap"
)

// Element names recognized in the export document.
const (
	tagHealthData      = "HealthData"
	tagExportDate      = "ExportDate"
	tagMe              = "Me"
	tagRecord          = "Record"
	tagCorrelation     = "Correlation"
	tagWorkout         = "Workout"
	tagActivitySummary = "ActivitySummary"
)

// Me element attribute keys.
const (
	attrDateOfBirth   = "HKCharacteristicTypeIdentifierDateOfBirth"
	attrBiologicalSex = "HKCharacteristicTypeIdentifierBiologicalSex"
	attrBloodType     = "HKCharacteristicTypeIdentifierBloodType"
	attrSkinType      = "HKCharacteristicTypeIdentifierFitzpatrickSkinType"
)

// MapperOptions configures a Mapper.
type MapperOptions struct {
	// SkipTypes drops records whose type identifier is listed.
	SkipTypes []string
	// KeepTimezone leaves the timezone offset on date strings.
	KeepTimezone bool
	Logger       *zap.Logger
}

// Mapper turns element events into typed rows on a Sink. The only state it
// carries is the Correlation currently being assembled, so a single Mapper
// handles an arbitrarily large export.
type Mapper struct {
	skip         map[string]bool
	keepTimezone bool
	logger       *zap.Logger

	inCorrelation bool
	corr          correlation
	exportDate    string
	skipped       map[string]int
}

type correlation struct {
	ctype   string
	source  string
	start   string
	end     string
	records []Record
}

// NewMapper returns a Mapper ready to feed.
func NewMapper(opts MapperOptions) *Mapper {
	skip := make(map[string]bool, len(opts.SkipTypes))
	for _, t := range opts.SkipTypes {
		skip[t] = true
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{
		skip:         skip,
		keepTimezone: opts.KeepTimezone,
		logger:       logger,
		skipped:      make(map[string]int),
	}
}

// Feed maps one event to at most one row on sink. Unrecognized elements are
// counted and skipped, never fatal.
func (m *Mapper) Feed(ev Event, sink Sink) error {
	if ev.Kind == EndElement {
		if ev.Name == tagCorrelation && m.inCorrelation {
			return m.finishCorrelation(sink)
		}
		return nil
	}

	switch ev.Name {
	case tagHealthData:
		// Document root.
		return nil

	case tagExportDate:
		m.exportDate = m.date(ev.Attrs["value"])
		return nil

	case tagMe:
		return sink.Profile(Profile{
			DateOfBirth:   ev.Attrs[attrDateOfBirth],
			BiologicalSex: cleanBiologicalSex(ev.Attrs[attrBiologicalSex]),
			BloodType:     cleanBloodType(ev.Attrs[attrBloodType]),
			SkinType:      cleanSkinType(ev.Attrs[attrSkinType]),
		})

	case tagRecord:
		return m.feedRecord(ev, sink)

	case tagCorrelation:
		m.inCorrelation = true
		m.corr = correlation{
			ctype:  ev.Attrs["type"],
			source: ev.Attrs["sourceName"],
			start:  m.date(ev.Attrs["startDate"]),
			end:    m.date(ev.Attrs["endDate"]),
		}
		return nil

	case tagWorkout:
		return sink.Workout(Workout{
			ActivityType:  CleanWorkoutType(ev.Attrs["workoutActivityType"]),
			Duration:      ev.Attrs["duration"],
			DurationUnit:  ev.Attrs["durationUnit"],
			TotalDistance: ev.Attrs["totalDistance"],
			DistanceUnit:  ev.Attrs["totalDistanceUnit"],
			TotalEnergy:   ev.Attrs["totalEnergyBurned"],
			EnergyUnit:    ev.Attrs["totalEnergyBurnedUnit"],
			Source:        ev.Attrs["sourceName"],
			StartDate:     m.date(ev.Attrs["startDate"]),
			EndDate:       m.date(ev.Attrs["endDate"]),
		})

	case tagActivitySummary:
		return sink.ActivitySummary(ActivitySummary{
			Date:             ev.Attrs["dateComponents"],
			ActiveEnergy:     ev.Attrs["activeEnergyBurned"],
			ActiveEnergyGoal: ev.Attrs["activeEnergyBurnedGoal"],
			ExerciseTime:     ev.Attrs["appleExerciseTime"],
			ExerciseTimeGoal: ev.Attrs["appleExerciseTimeGoal"],
			StandHours:       ev.Attrs["appleStandHours"],
			StandHoursGoal:   ev.Attrs["appleStandHoursGoal"],
		})

	default:
		m.skipElement(ev.Name)
		return nil
	}
}

func (m *Mapper) feedRecord(ev Event, sink Sink) error {
	recType := ev.Attrs["type"]
	rec := Record{
		Type:         recType,
		Source:       ev.Attrs["sourceName"],
		Value:        ev.Attrs["value"],
		Unit:         ev.Attrs["unit"],
		StartDate:    m.date(ev.Attrs["startDate"]),
		EndDate:      m.date(ev.Attrs["endDate"]),
		CreationDate: m.date(ev.Attrs["creationDate"]),
	}

	if m.inCorrelation {
		m.corr.records = append(m.corr.records, rec)
		return nil
	}
	if bpTypes[recType] {
		// Duplicates of Correlation children, per the export DTD.
		return nil
	}
	if m.skip[recType] {
		m.skipElement(recType)
		return nil
	}
	return sink.Record(rec)
}

func (m *Mapper) finishCorrelation(sink Sink) error {
	corr := m.corr
	m.inCorrelation = false
	m.corr = correlation{}

	if !strings.Contains(corr.ctype, "BloodPressure") {
		m.skipElement(corr.ctype)
		return nil
	}

	bp := BloodPressure{
		Source:    corr.source,
		StartDate: corr.start,
		EndDate:   corr.end,
	}
	for _, rec := range corr.records {
		switch {
		case strings.Contains(rec.Type, "Systolic"):
			bp.Systolic = rec.Value
			bp.Unit = rec.Unit
		case strings.Contains(rec.Type, "Diastolic"):
			bp.Diastolic = rec.Value
		}
	}
	return sink.BloodPressure(bp)
}

// ExportDate returns the document's export timestamp, if one was seen.
func (m *Mapper) ExportDate() string { return m.exportDate }

// Skipped returns counts of skipped element names and type identifiers.
func (m *Mapper) Skipped() map[string]int { return m.skipped }

func (m *Mapper) skipElement(name string) {
	if m.skipped[name] == 0 {
		m.logger.Debug("skipping unsupported element", zap.String("name", name))
	}
	m.skipped[name]++
}

func (m *Mapper) date(s string) string {
	if m.keepTimezone {
		return s
	}
	return CleanDate(s)
}
