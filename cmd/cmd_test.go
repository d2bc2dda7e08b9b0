package cmd

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/timesync/internal/auth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "timesync dev (commit=none, built=unknown)\n", out)
}

func TestKeys(t *testing.T) {
	out, err := run(t, "keys")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for i, prefix := range []string{"export COOKIE_HASH_KEY=", "export COOKIE_BLOCK_KEY="} {
		require.True(t, strings.HasPrefix(lines[i], prefix), lines[i])
		key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(lines[i], prefix))
		require.NoError(t, err)
		require.Len(t, key, 32)
	}
}

func TestPasswd(t *testing.T) {
	out, err := run(t, "passwd", "--password", "s3cret")
	require.NoError(t, err)
	hash := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(out), "export ACCESS_PASSWORD_BCRYPT='"), "'")
	require.True(t, auth.CheckPassword(hash, "s3cret"))

	_, err = run(t, "passwd")
	require.Error(t, err)
}

func TestZones(t *testing.T) {
	out, err := run(t, "zones")
	require.NoError(t, err)
	require.Contains(t, out, "Asia/Kolkata")
	require.Contains(t, out, "Auckland (NZST/NZDT)")
}

func TestSuggest(t *testing.T) {
	out, err := run(t, "suggest",
		"-p", "Alice Smith|America/New_York",
		"-p", "Bob|Europe/London|09:00|17:00|bob@example.org",
		"--date", "2026-01-15",
		"--urls",
	)
	require.NoError(t, err)
	require.Contains(t, out, "14:00")
	require.Contains(t, out, "2/2")
	require.Contains(t, out, "09:00 ok (Thu, Jan 15)")
	require.Equal(t, 3, strings.Count(out, "https://calendar.google.com/calendar/render?action=TEMPLATE"))
	require.Contains(t, out, "&add=alicesmith%40company.com%2Cbob%40example.org")
}

func TestSuggest_TopAndNoOverlap(t *testing.T) {
	out, err := run(t, "suggest", "-p", "A|UTC", "-p", "B|UTC", "--date", "2026-01-15", "--top", "1", "--urls")
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(out, "https://calendar.google.com"))
	require.Contains(t, out, "20260115T090000Z/20260115T100000Z")

	out, err = run(t, "suggest", "-p", "A|America/New_York", "-p", "K|Asia/Tokyo", "--date", "2026-01-15")
	require.NoError(t, err)
	require.Equal(t, "No overlapping time slots found.\n", out)
}

func TestSuggest_Invalid(t *testing.T) {
	tests := map[string][]string{
		"no participants": {"suggest"},
		"bad zone":        {"suggest", "-p", "A|Moon/Base"},
		"bad hours":       {"suggest", "-p", "A|UTC|9am|5pm"},
		"bad date":        {"suggest", "-p", "A|UTC", "--date", "15/01/2026"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, args...)
			require.Error(t, err)
		})
	}
}

func TestOverlap(t *testing.T) {
	out, err := run(t, "overlap", "--no-color", "-p", "Alice|UTC|09:00|11:00", "-p", "Bo|UTC|10:00|12:00", "--date", "2026-01-15")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "UTC    00 01"), lines[0])

	// cells are three columns wide, after the name column and two spaces
	cell := func(line string, hour int) string {
		off := len("Alice") + 2 + hour*3
		return line[off : off+2]
	}
	require.Equal(t, "..", cell(lines[1], 8))
	require.Equal(t, "##", cell(lines[1], 9))
	require.Equal(t, "##", cell(lines[1], 11))
	require.Equal(t, "..", cell(lines[1], 12))
	require.Equal(t, "..", cell(lines[2], 9))
	require.Equal(t, "##", cell(lines[2], 12))
	require.Equal(t, " 2", cell(lines[3], 10))
	require.Equal(t, " 2", cell(lines[3], 11))
}
