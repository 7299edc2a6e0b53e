package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_FirstUsableCandidateWins(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "qzmx.xlsx")
	second := createTestXLSX(t, dir, "ND曲轴.xlsx", map[string][][]string{
		"CCS": {testHeader, {"2005L6-366", "宁波中策6NL30曲轴", "42CrMo", "H1", "D1", "C1", "2023-05-12"}},
	})
	third := createTestXLSX(t, dir, "data.xlsx", map[string][][]string{
		"Sheet1": {testHeader, {"OTHER-1"}},
	})

	set, err := newTestLoader(t, missing, second, third).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, second, set.Source())
	assert.Equal(t, "2005L6-366", set.At(0).Identifier)
	assert.Equal(t, "6NL30", set.At(0).ModelCode)
	assert.NotEmpty(t, set.Version())
}

func TestLoader_SkipsCandidateThatFailsToNormalize(t *testing.T) {
	dir := t.TempDir()
	noID := writeFile(t, dir, "a.csv", []byte("名称\nx\n"))
	good := writeFile(t, dir, "b.csv", []byte("轴号\nA1\n"))

	set, err := newTestLoader(t, noID, good).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, good, set.Source())
}

func TestLoader_Unavailable(t *testing.T) {
	dir := t.TempDir()
	unknown := writeFile(t, dir, "data.json", []byte("{}"))

	_, err := newTestLoader(t, filepath.Join(dir, "qzmx.xlsx"), unknown).Load(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	assert.True(t, IsUnavailable(eris.Wrap(err, "wrapped")))

	var ue *UnavailableError
	require.ErrorAs(t, err, &ue)
	require.Len(t, ue.Attempts, 2)
	assert.Contains(t, ue.Attempts[1].Err.Error(), "no reader")
}

func TestLoader_NoCandidates(t *testing.T) {
	_, err := newTestLoader(t).Load(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	assert.Contains(t, err.Error(), "no candidate")
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader(t, "x.csv").Load(ctx)
	require.Error(t, err)
	assert.False(t, IsUnavailable(err))
}

func TestLoader_Idempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv", []byte("轴号,船检时间\nA1,2023-05-12\nA2,待定\n"))
	l := newTestLoader(t, path)

	a, err := l.Load(context.Background())
	require.NoError(t, err)
	b, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoader_Peek(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", []byte("轴号\nA1\n"))
	l := newTestLoader(t, filepath.Join(dir, "missing.xlsx"), path)

	got, version, err := l.Peek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, got)

	fp, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, fp, version)
}

func TestLoader_PeekSkipsUnchangedRejectedCandidate(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "a.csv", []byte("col\nx\n"))
	good := writeFile(t, dir, "b.csv", []byte("轴号\nA1\n"))
	l := newTestLoader(t, bad, good)

	// Before any load nothing is known to be bad.
	got, _, err := l.Peek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bad, got)

	set, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, good, set.Source())

	got, version, err := l.Peek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, good, got)
	assert.Equal(t, set.Version(), version)

	// An edited rejected file is worth another look.
	require.NoError(t, os.WriteFile(bad, []byte("轴号\nZ9\n"), 0o644))
	got, _, err = l.Peek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bad, got)
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", []byte("轴号\nA1\n"))
	a, err := Fingerprint(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("轴号\nA2\n"), 0o644))
	b, err := Fingerprint(path)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 16)
}

func TestLoader_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := createTestXLSX(t, dir, "qzmx.xlsx", map[string][][]string{
		"CCS": {
			{"轴 号", "名 称", "材 质", "炉 号", "图 号", "船检控制号", "船检时间"},
			{"2005L6-366", "宁波中策6NL30曲轴", "42CrMo", "H1", "D1", "C1", "12-05-2023"},
		},
	})

	set, err := newTestLoader(t, path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	r := set.At(0)
	assert.Equal(t, "2005L6-366", r.Identifier)
	assert.Equal(t, "D1", r.DrawingNumber)
	require.True(t, r.InspectionDate.Valid)
	assert.Equal(t, "12-05-2023", r.InspectionDate.Time.Format("02-01-2006"))
}
