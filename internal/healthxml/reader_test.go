package healthxml

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, doc string) []Event {
	t.Helper()
	r := NewReader(strings.NewReader(doc))
	var events []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestReaderStreamsElements(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE HealthData>
<HealthData locale="en_US">
 <Record type="HKQuantityTypeIdentifierStepCount" value="312"/>
</HealthData>`

	events := readAll(t, doc)
	require.Len(t, events, 4)

	assert.Equal(t, StartElement, events[0].Kind)
	assert.Equal(t, "HealthData", events[0].Name)
	assert.Equal(t, "en_US", events[0].Attrs["locale"])
	assert.Greater(t, events[0].Offset, int64(0))

	assert.Equal(t, StartElement, events[1].Kind)
	assert.Equal(t, "Record", events[1].Name)
	assert.Equal(t, "HKQuantityTypeIdentifierStepCount", events[1].Attrs["type"])
	assert.Equal(t, "312", events[1].Attrs["value"])

	assert.Equal(t, EndElement, events[2].Kind)
	assert.Equal(t, "Record", events[2].Name)
	assert.Equal(t, EndElement, events[3].Kind)
	assert.Equal(t, "HealthData", events[3].Name)
}

func TestReaderSkipsCharacterData(t *testing.T) {
	doc := `<HealthData>
  some stray text
  <!-- a comment -->
</HealthData>`

	events := readAll(t, doc)
	require.Len(t, events, 2)
	assert.Equal(t, StartElement, events[0].Kind)
	assert.Equal(t, EndElement, events[1].Kind)
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderMalformedInput(t *testing.T) {
	t.Run("truncated document", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<HealthData><Record type="x"`))

		_, err := r.Next()
		require.NoError(t, err) // HealthData start is fine

		_, err = r.Next()
		require.Error(t, err)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Greater(t, parseErr.Offset, int64(0))
		assert.NotNil(t, parseErr.Unwrap())
		assert.Contains(t, parseErr.Error(), "malformed xml at byte")
	})

	t.Run("mismatched tags", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<HealthData></Workout>`))

		_, err := r.Next()
		require.NoError(t, err)

		_, err = r.Next()
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("not EOF", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<a`))
		_, err := r.Next()
		require.Error(t, err)
		assert.False(t, errors.Is(err, io.EOF))
	})
}
