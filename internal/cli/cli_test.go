package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/birthdaybot-be/internal/validation"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDaysCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"countdown", []string{"days", "1990-12-25", "--today", "2024-06-01"}, "207 day(s) until the next birthday on 2024-12-25\n"},
		{"birthday today", []string{"days", "1990-06-01", "--today", "2024-06-01"}, "Happy birthday!\n"},
		{"leap day in common year", []string{"days", "2000-02-29", "--today", "2023-02-01"}, "27 day(s) until the next birthday on 2023-02-28\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDaysCommand_IgnoresStoreConfig(t *testing.T) {
	t.Setenv("BDB_DB_DRIVER", "mysql")

	out, err := run(t, "days", "1990-12-25", "--today", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "207 day(s) until the next birthday on 2024-12-25\n", out)
}

func TestDaysCommand_Rejects(t *testing.T) {
	_, err := run(t, "days", "25-12-1990", "--today", "2024-06-01")
	assert.ErrorIs(t, err, validation.ErrInvalidDateFormat)

	_, err = run(t, "days", "2024-06-02", "--today", "2024-06-01")
	assert.ErrorIs(t, err, validation.ErrFutureDate)

	_, err = run(t, "days", "1990-12-25", "--today", "June 1st")
	assert.ErrorIs(t, err, validation.ErrInvalidDateFormat)

	_, err = run(t, "days")
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	t.Setenv("BDB_DB_PATH", filepath.Join(t.TempDir(), "birthdays.db"))

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "birthdays table ready\n", out)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	t.Setenv("BDB_DB_DRIVER", "oracle")

	_, err := run(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}
