package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2023-05-12",
		"2023-5-12",
		" 2023-05-12 ",
		"2023-05-12 00:00:00",
		"2023/05/12",
		"2023/5/12",
		"2023.05.12",
		"2023年5月12日",
		"12-05-2023",
		"12.05.2023",
		"20230512",
		"5/12/2023",
		"45058",
	} {
		d := ParseDate(in)
		require.True(t, d.Valid, "expected %q to parse", in)
		assert.Equal(t, want.Format("2006-01-02"), d.Time.Format("2006-01-02"), "input %q", in)
	}
}

func TestParseDate_Unparseable(t *testing.T) {
	for _, in := range []string{"待定", "未取件", "2023", "13-13-2023", "N/A"} {
		d := ParseDate(in)
		assert.False(t, d.Valid, "did not expect %q to parse", in)
		assert.Equal(t, in, d.Raw)
	}
}

func TestParseDate_Empty(t *testing.T) {
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("   ").IsZero())
}

func TestParseDate_DayFirstRoundTrip(t *testing.T) {
	for _, in := range []string{"01-02-2024", "31-12-1999", "09-11-2021", "28-02-2023"} {
		d := ParseDate(in)
		require.True(t, d.Valid, in)
		assert.Equal(t, in, d.Time.Format("02-01-2006"))
	}
}
