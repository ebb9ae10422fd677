package tabular

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attendanceMapping = map[string]string{
	"Student Number": "student_number",
	"Name":           "name",
	"Hrs Attended":   "hrs_attended",
	"Hrs Possible":   "hrs_possible",
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTable_MapsAndDropsHeaders(t *testing.T) {
	path := writeTemp(t, "att.csv",
		"Student Number, Name ,Hrs Attended,Hrs Possible,Segment\n"+
			"1001,Doe Jane,10,12,3\n")

	rows := ReadTable(path, attendanceMapping)
	require.Len(t, rows, 1)

	id, ok := rows[0].Int64("student_number")
	require.True(t, ok)
	assert.Equal(t, int64(1001), id)

	// "Segment" has no mapping and must be dropped.
	_, ok = rows[0]["segment"]
	assert.False(t, ok)
	_, ok = rows[0]["Segment"]
	assert.False(t, ok)

	// Header whitespace is stripped before mapping.
	name, ok := rows[0].String("name")
	require.True(t, ok)
	assert.Equal(t, "Doe Jane", name)
}

func TestReadTable_MissingFileIsEmpty(t *testing.T) {
	rows := ReadTable(filepath.Join(t.TempDir(), "nope.csv"), attendanceMapping)
	assert.Empty(t, rows)
}

func TestReadTable_StripsBOM(t *testing.T) {
	path := writeTemp(t, "bom.csv",
		"\xef\xbb\xbfStudent Number,Name,Hrs Attended,Hrs Possible\n1001,Doe,10,12\n")

	rows := ReadTable(path, attendanceMapping)
	require.Len(t, rows, 1)

	_, ok := rows[0].Int64("student_number")
	assert.True(t, ok, "BOM must not corrupt the first header")
}

func TestRow_Int64_FloatExport(t *testing.T) {
	r := Row{"student_number": "1001.0"}
	id, ok := r.Int64("student_number")
	require.True(t, ok)
	assert.Equal(t, int64(1001), id)
}

func TestRow_Float_Malformed(t *testing.T) {
	r := Row{"hrs_attended": "n/a"}
	_, ok := r.Float("hrs_attended")
	assert.False(t, ok)
}

func TestParseDate_Layouts(t *testing.T) {
	for _, v := range []string{
		"2011-04-09 00:00:00.000000",
		"2011-04-09 00:00:00",
		"2011-04-09",
		"4/9/2011",
	} {
		got, err := ParseDate(v)
		require.NoError(t, err, v)
		assert.Equal(t, time.Date(2011, 4, 9, 0, 0, 0, 0, time.UTC), got)
	}

	_, err := ParseDate("ninth of april")
	assert.Error(t, err)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := WriteCSV(path, []string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}})
	require.NoError(t, err)

	rows := ReadTable(path, map[string]string{"a": "a", "b": "b"})
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"a": "1", "b": "x"}, rows[0])
}
