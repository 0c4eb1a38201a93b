package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_RunsSessionOnSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	path := filepath.Join(t.TempDir(), "scheduler.db")

	out, err := execute(t, "create_caregiver alice Str0ng!Pw\nquit\n", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to the COVID-19 Vaccine Reservation Scheduling Application!")
	assert.Contains(t, out, "> Created user alice\n")
	assert.True(t, strings.HasSuffix(out, "> Bye!\n"))

	_, err = os.Stat(path)
	require.NoError(t, err)

	// state survives a restart
	out, err = execute(t, "login_caregiver alice Str0ng!Pw\n", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "> Logged in as: alice\n")
}

func TestRoot_RejectsBadFlags(t *testing.T) {
	_, err := execute(t, "", "--driver", "mysql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")

	_, err = execute(t, "", "--log-level", "loud", "--db", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")

	_, err = execute(t, "", "extra-arg")
	assert.Error(t, err)
}

func TestRoot_EnvConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheduler.db")

	t.Setenv("LOGIN_BURST", "abc")
	_, err := execute(t, "", "--db", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOGIN_BURST")

	// an invalid env driver is overridden by the flag
	t.Setenv("LOGIN_BURST", "")
	t.Setenv("DB_DRIVER", "mysql")
	out, err := execute(t, "quit\n", "--driver", "sqlite", "--db", path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "> Bye!\n"))
}
