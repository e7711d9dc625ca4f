package healthxml

import (
	"strings"
	"unicode"
)

// TypeNames maps HealthKit type identifiers to human-friendly file names.
// Identifiers not listed here fall back to a snake_case conversion of the
// identifier with its HK prefix stripped.
var TypeNames = map[string]string{
	"HKQuantityTypeIdentifierHeartRate":                      "heart_rate",
	"HKQuantityTypeIdentifierStepCount":                      "steps",
	"HKQuantityTypeIdentifierBloodGlucose":                   "blood_glucose",
	"HKQuantityTypeIdentifierActiveEnergyBurned":             "active_energy",
	"HKQuantityTypeIdentifierBasalEnergyBurned":              "basal_energy",
	"HKQuantityTypeIdentifierDistanceWalkingRunning":         "distance_walking_running",
	"HKQuantityTypeIdentifierDistanceCycling":                "distance_cycling",
	"HKQuantityTypeIdentifierOxygenSaturation":               "oxygen_saturation",
	"HKQuantityTypeIdentifierBloodPressureSystolic":          "blood_pressure_systolic",
	"HKQuantityTypeIdentifierBloodPressureDiastolic":         "blood_pressure_diastolic",
	"HKQuantityTypeIdentifierFlightsClimbed":                 "flights_climbed",
	"HKQuantityTypeIdentifierHeartRateVariabilitySDNN":       "heart_rate_variability",
	"HKQuantityTypeIdentifierRestingHeartRate":               "resting_heart_rate",
	"HKQuantityTypeIdentifierWalkingHeartRateAverage":        "walking_heart_rate_avg",
	"HKQuantityTypeIdentifierVO2Max":                         "vo2_max",
	"HKQuantityTypeIdentifierRespiratoryRate":                "respiratory_rate",
	"HKQuantityTypeIdentifierBodyMass":                       "body_mass",
	"HKQuantityTypeIdentifierHeight":                         "height",
	"HKQuantityTypeIdentifierPhysicalEffort":                 "physical_effort",
	"HKQuantityTypeIdentifierEnvironmentalAudioExposure":     "environmental_audio",
	"HKQuantityTypeIdentifierWalkingSpeed":                   "walking_speed",
	"HKQuantityTypeIdentifierWalkingStepLength":              "walking_step_length",
	"HKQuantityTypeIdentifierWalkingDoubleSupportPercentage": "walking_double_support",
	"HKQuantityTypeIdentifierWalkingAsymmetryPercentage":     "walking_asymmetry",
	"HKQuantityTypeIdentifierAppleWalkingSteadiness":         "walking_steadiness",
	"HKQuantityTypeIdentifierAppleStandTime":                 "stand_time",
	"HKQuantityTypeIdentifierAppleExerciseTime":              "exercise_time",
	"HKQuantityTypeIdentifierStairAscentSpeed":               "stair_ascent_speed",
	"HKQuantityTypeIdentifierStairDescentSpeed":              "stair_descent_speed",
	"HKQuantityTypeIdentifierTimeInDaylight":                 "time_in_daylight",
	"HKQuantityTypeIdentifierSixMinuteWalkTestDistance":      "six_minute_walk_distance",
	"HKQuantityTypeIdentifierHeadphoneAudioExposure":         "headphone_audio",
	"HKCategoryTypeIdentifierSleepAnalysis":                  "sleep_analysis",
	"HKCategoryTypeIdentifierAppleStandHour":                 "stand_hours",
	"HKCategoryTypeIdentifierAudioExposureEvent":             "audio_exposure_events",
	"HKDataTypeSleepDurationGoal":                            "sleep_duration_goal",
}

// bpTypes are skipped as top-level records; the export duplicates them as
// children of blood-pressure Correlation elements.
var bpTypes = map[string]bool{
	"HKQuantityTypeIdentifierBloodPressureSystolic":  true,
	"HKQuantityTypeIdentifierBloodPressureDiastolic": true,
}

var typePrefixes = []string{
	"HKQuantityTypeIdentifier",
	"HKCategoryTypeIdentifier",
	"HKDataType",
}

const workoutActivityPrefix = "HKWorkoutActivityType"

// FriendlyName converts a HealthKit type identifier to a snake_case name
// suitable for an output file.
func FriendlyName(hkType string) string {
	if name, ok := TypeNames[hkType]; ok {
		return name
	}
	name := hkType
	for _, prefix := range typePrefixes {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return camelToSnake(name)
}

func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if unicode.IsUpper(r) {
			if b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CleanDate strips the trailing timezone offset from an export timestamp:
// "2025-11-28 13:16:43 -0500" -> "2025-11-28 13:16:43".
func CleanDate(s string) string {
	if len(s) < 6 {
		return s
	}
	tail := s[len(s)-6:]
	if tail[0] != ' ' || (tail[1] != '+' && tail[1] != '-') {
		return s
	}
	for i := 2; i < 6; i++ {
		if tail[i] < '0' || tail[i] > '9' {
			return s
		}
	}
	return strings.TrimRight(s[:len(s)-6], " ")
}

// CleanWorkoutType strips the activity prefix:
// "HKWorkoutActivityTypeWalking" -> "Walking".
func CleanWorkoutType(activityType string) string {
	return strings.TrimPrefix(activityType, workoutActivityPrefix)
}

func cleanBiologicalSex(v string) string {
	return strings.TrimPrefix(v, "HKBiologicalSex")
}

func cleanBloodType(v string) string {
	return splitCamelWords(strings.TrimPrefix(v, "HKBloodType"))
}

func cleanSkinType(v string) string {
	return splitCamelWords(strings.TrimPrefix(v, "HKFitzpatrickSkinType"))
}

// splitCamelWords inserts spaces at lower-to-upper boundaries:
// "NotSet" -> "Not Set".
func splitCamelWords(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
