package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "file")
	t.Setenv("DATA_FILE_PATH", filepath.Join(t.TempDir(), "moneyapp.json"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AMQP_URL", "")
}

func execute(t *testing.T, input string, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr, oldIn := stdout, stderr, stdin
	stdout, stderr, stdin = &out, &errOut, bufio.NewReader(strings.NewReader(input))
	t.Cleanup(func() { stdout, stderr, stdin = oldOut, oldErr, oldIn })

	fs := flag.NewFlagSet("moneyapp", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "moneyapp")
	commander.Output = &out
	commander.Error = &errOut
	Register(commander)
	require.NoError(t, fs.Parse(args))

	status := commander.Execute(context.Background())
	return status, out.String(), errOut.String()
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	status, out, errOut := execute(t, "", args...)
	require.Equal(t, subcommands.ExitSuccess, status, "%v: %s", args, errOut)
	return out
}

func TestRegisterLoginAndPages(t *testing.T) {
	setEnv(t)

	mustRun(t, "register", "-name", "Alex", "-pin", "123456")
	out := mustRun(t, "users")
	assert.Contains(t, out, "🟢 Alex")

	out = mustRun(t, "login", "-name", "Alex", "-pin", "123456")
	assert.Contains(t, out, "Welcome, Alex!")

	mustRun(t, "add", "-a", "20")
	out = mustRun(t, "subtract", "-a", "5")
	assert.Contains(t, out, "15.00")

	out = mustRun(t, "money")
	assert.Contains(t, out, "-€5.00")
	assert.Less(t, strings.Index(out, "-€5.00"), strings.Index(out, "+€20.00"), "newest first")

	mustRun(t, "save", "-a", "10")
	out = mustRun(t, "goal", "-a", "40")
	assert.Contains(t, out, "25% saved")

	mustRun(t, "budget", "-a", "100")
	out = mustRun(t, "spend", "-a", "30", "-c", "Food")
	assert.Contains(t, out, "Food:")
	assert.Contains(t, out, "35% of budget")

	out = mustRun(t, "reset-spending", "-yes")
	assert.Contains(t, out, "Removed 2 expenses.")

	out = mustRun(t, "dashboard")
	assert.Contains(t, out, "Balance: €15.00")
}

func TestUserFacingErrors(t *testing.T) {
	setEnv(t)
	mustRun(t, "register", "-name", "Alex", "-pin", "123456")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"duplicate", []string{"register", "-name", "Alex", "-pin", "654321"}, "This name is already registered"},
		{"short pin", []string{"register", "-name", "Sam", "-pin", "12"}, "exactly 6 digits"},
		{"wrong pin", []string{"login", "-name", "Alex", "-pin", "000000"}, "Oops! PIN is incorrect. Try again."},
		{"not logged in", []string{"dashboard"}, "Please log in first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, errOut := execute(t, "", tt.args...)
			assert.Equal(t, subcommands.ExitFailure, status)
			assert.Contains(t, errOut, tt.want)
		})
	}

	mustRun(t, "login", "-name", "Alex", "-pin", "123456")
	status, _, errOut := execute(t, "", "subtract", "-a", "1")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "Insufficient balance")
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	setEnv(t)
	mustRun(t, "register", "-name", "Alex", "-pin", "123456")

	status, _, errOut := execute(t, "n\n", "delete", "-name", "Alex")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "Are you sure you want to delete Alex? [y/N]")
	assert.Contains(t, mustRun(t, "users"), "Alex")

	status, out, _ := execute(t, "y\n", "delete", "-name", "Alex")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "User Alex deleted.")
	assert.Contains(t, mustRun(t, "users"), "No users yet")
}

func TestPocketOverwritesBalance(t *testing.T) {
	setEnv(t)
	mustRun(t, "register", "-name", "Alex", "-pin", "123456")
	mustRun(t, "login", "-name", "Alex", "-pin", "123456")
	mustRun(t, "add", "-a", "50")

	out := mustRun(t, "pocket", "-p", "bank", "-a", "7")
	assert.Contains(t, out, "Balance: €7.00")
	assert.Contains(t, out, "Bank:")

	status, _, _ := execute(t, "", "pocket", "-p", "piggy", "-a", "1")
	assert.Equal(t, subcommands.ExitFailure, status)
}
