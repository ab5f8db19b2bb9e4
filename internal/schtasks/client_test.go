package schtasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	bin   string
	args  []string
	lines []string
	err   error
	calls int
}

func (f *fakeRunner) Run(_ context.Context, bin string, args []string) ([]string, error) {
	f.calls++
	f.bin = bin
	f.args = args
	if f.err != nil {
		return nil, f.err
	}
	return f.lines, nil
}

type fakePrompter struct {
	confirm    bool
	confirmErr error
	secret     string
	secretErr  error
	prompts    []string
}

func (f *fakePrompter) Confirm(prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.confirm, f.confirmErr
}

func (f *fakePrompter) Secret(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.secret, f.secretErr
}

func newTestClient(r *fakeRunner, p Prompter) *Client {
	opts := []Option{WithRunner(r), WithExecDir(`C:\Projects`)}
	if p != nil {
		opts = append(opts, WithPrompter(p))
	}
	return New(opts...)
}

func TestCreateDailyInvokesScheduler(t *testing.T) {
	runner := &fakeRunner{lines: []string{`SUCCESS: The scheduled task "TestTask" has successfully been created.`}}
	client := newTestClient(runner, nil)

	err := client.CreateDaily(context.Background(), CreateRequest{
		TaskName:      "TestTask",
		TaskRun:       `C:\test.exe`,
		NoInterpreter: true,
		Modifier:      "5",
	})
	require.NoError(t, err)
	require.Equal(t, 1, runner.calls)
	assert.Equal(t, "schtasks", runner.bin)

	assert.Equal(t, "/create", runner.args[0])
	assert.Equal(t, "/sc", runner.args[1])
	assert.Equal(t, "DAILY", runner.args[2])
	assert.Equal(t, "/tn", runner.args[3])
	assert.Equal(t, `"TestTask"`, runner.args[4])
	assert.Contains(t, runner.args, "/mo")
	assert.Contains(t, runner.args, "5")
}

func TestCreateEmbedsTaskCommand(t *testing.T) {
	runner := &fakeRunner{}
	client := New(WithRunner(runner), WithExecDir(`C:\Projects`), WithInterpreter("python"))

	err := client.CreateDaily(context.Background(), CreateRequest{
		TaskName: "Nightly",
		TaskRun:  "etl.py",
	})
	require.NoError(t, err)

	idx := indexOf(runner.args, "/tr")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, `"cmd /c "cd /d "C:\Projects" && python "etl.py"""`, runner.args[idx+1])
}

func TestCreateMinuteModifierBounds(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateMinute(context.Background(), CreateRequest{
		TaskName:      "T",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
		Modifier:      "1440",
	})
	require.Error(t, err)
	assert.Zero(t, runner.calls, "invalid input must never reach the external tool")
}

func TestCreateWeeklyNormalisesDays(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateWeekly(context.Background(), CreateRequest{
		TaskName:      "Weekly",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
		Days:          []string{"Monday", "fri"},
	})
	require.NoError(t, err)

	idx := indexOf(runner.args, "/d")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "MON,FRI", runner.args[idx+1])
}

func TestCreateMonthlyOrdinalRequiresDay(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateMonthly(context.Background(), CreateRequest{
		TaskName:      "Monthly",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
		Modifier:      "SECOND",
	})
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "day", verr.Field)
	assert.Zero(t, runner.calls)
}

func TestCreateMonthlyLastDayDropsDay(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateMonthly(context.Background(), CreateRequest{
		TaskName:      "Monthly",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
		Modifier:      "LASTDAY",
		Days:          []string{"15"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, runner.calls)
	assert.NotContains(t, runner.args, "/d", "ignored day must not be emitted")
	idx := indexOf(runner.args, "/mo")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "LASTDAY", runner.args[idx+1])
}

func TestCreateMonthlyNumericDayOfMonth(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateMonthly(context.Background(), CreateRequest{
		TaskName:      "Monthly",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
		Modifier:      "2",
		Days:          []string{"15"},
		Months:        []string{"january", "JULY"},
	})
	require.NoError(t, err)

	dIdx := indexOf(runner.args, "/d")
	require.GreaterOrEqual(t, dIdx, 0)
	assert.Equal(t, "15", runner.args[dIdx+1])
	mIdx := indexOf(runner.args, "/m")
	require.GreaterOrEqual(t, mIdx, 0)
	assert.Equal(t, "JAN,JUL", runner.args[mIdx+1])
}

func TestCreateMonthlyRejectsBadDayOfMonth(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateMonthly(context.Background(), CreateRequest{
		TaskName:      "Monthly",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
		Days:          []string{"32"},
	})
	require.Error(t, err)
	assert.Zero(t, runner.calls)
}

func TestCreateOnceRequiresStartTime(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateOnce(context.Background(), CreateRequest{
		TaskName:      "Once",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
	})
	require.Error(t, err)
	assert.Zero(t, runner.calls)
}

func TestCreateOnIdleRequiresIdleTime(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateOnIdle(context.Background(), CreateRequest{
		TaskName:      "Idle",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
	})
	require.Error(t, err)

	err = client.CreateOnIdle(context.Background(), CreateRequest{
		TaskName:      "Idle",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
		IdleTime:      10,
	})
	require.NoError(t, err)
	assert.Contains(t, runner.args, "/i")
}

func TestCreateEndTimeDurationExclusive(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	err := client.CreateHourly(context.Background(), CreateRequest{
		TaskName:      "T",
		TaskRun:       `C:\t.exe`,
		NoInterpreter: true,
		EndTime:       "17:00",
		Duration:      "0002:00",
	})
	require.Error(t, err)
	assert.Zero(t, runner.calls)
}

func TestChangePromptsForCredential(t *testing.T) {
	runner := &fakeRunner{}
	prompter := &fakePrompter{secret: "s3cret"}
	client := newTestClient(runner, prompter)

	err := client.Change(context.Background(), "T", ChangeOptions{RunAsUser: `DOMAIN\alice`})
	require.NoError(t, err)
	require.Len(t, prompter.prompts, 1)

	idx := indexOf(runner.args, "/rp")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "s3cret", runner.args[idx+1])
}

func TestChangeSystemAccountSkipsPrompt(t *testing.T) {
	for _, user := range []string{"SYSTEM", "system", `NT AUTHORITY\SYSTEM`} {
		runner := &fakeRunner{}
		prompter := &fakePrompter{secretErr: errors.New("should not be called")}
		client := newTestClient(runner, prompter)

		err := client.Change(context.Background(), "T", ChangeOptions{RunAsUser: user})
		require.NoError(t, err, "user %q", user)
		assert.Empty(t, prompter.prompts, "user %q", user)
		assert.NotContains(t, runner.args, "/rp")
	}
}

func TestChangeSuppliedPasswordSkipsPrompt(t *testing.T) {
	runner := &fakeRunner{}
	prompter := &fakePrompter{secretErr: errors.New("should not be called")}
	client := newTestClient(runner, prompter)

	err := client.Change(context.Background(), "T", ChangeOptions{RunAsUser: `DOMAIN\bob`, Password: "pw"})
	require.NoError(t, err)
	assert.Empty(t, prompter.prompts)
}

func TestChangeHeadlessFailsBeforeInvocation(t *testing.T) {
	runner := &fakeRunner{}
	prompter := &fakePrompter{secretErr: &InteractivityError{Op: "credential entry"}}
	client := newTestClient(runner, prompter)

	err := client.Change(context.Background(), "T", ChangeOptions{RunAsUser: `DOMAIN\carol`})
	require.Error(t, err)
	var ierr *InteractivityError
	assert.True(t, errors.As(err, &ierr))
	assert.Zero(t, runner.calls)
}

func TestQueryNonVerbose(t *testing.T) {
	runner := &fakeRunner{lines: []string{
		`"\Backup","16/06/2024 03:00:00","Ready"`,
		`"\Other","N/A","Disabled"`,
	}}
	client := newTestClient(runner, nil)

	records, err := client.Query(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"/query", "/fo", "CSV", "/nh"}, runner.args)
	require.Len(t, records, 2)
	assert.Equal(t, "Ready", records[0]["status"])
}

func TestQueryVerboseFlag(t *testing.T) {
	runner := &fakeRunner{lines: []string{
		`"HostName","TaskName","Status"`,
		`"PC1","\Backup","Ready"`,
	}}
	client := newTestClient(runner, nil)

	records, err := client.Query(context.Background(), QueryOptions{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"/query", "/fo", "CSV", "/v"}, runner.args)
	require.Len(t, records, 1)
	assert.Equal(t, `\Backup`, records[0]["taskname"])
}

func TestQueryPrefixFilter(t *testing.T) {
	runner := &fakeRunner{lines: []string{
		`"\Backup","16/06/2024 03:00:00","Ready"`,
		`"\Reports\Weekly","17/06/2024 08:00:00","Ready"`,
	}}
	client := newTestClient(runner, nil)

	records, err := client.Query(context.Background(), QueryOptions{Prefix: "Reports"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `\Reports\Weekly`, records[0]["task_name"])
}

func TestRunAndStop(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(runner, nil)

	require.NoError(t, client.Run(context.Background(), "T"))
	assert.Equal(t, []string{"/run", "/tn", `"T"`}, runner.args)

	require.NoError(t, client.Stop(context.Background(), "T"))
	assert.Equal(t, []string{"/end", "/tn", `"T"`}, runner.args)

	assert.Error(t, client.Run(context.Background(), "bad*name"))
}

func TestDeleteConfirmed(t *testing.T) {
	runner := &fakeRunner{}
	prompter := &fakePrompter{confirm: true}
	client := newTestClient(runner, prompter)

	deleted, err := client.Delete(context.Background(), "T", DeleteOptions{Confirm: true, Force: true})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"/delete", "/tn", `"T"`, "/f"}, runner.args)
}

func TestDeleteDeclined(t *testing.T) {
	runner := &fakeRunner{}
	prompter := &fakePrompter{confirm: false}
	client := newTestClient(runner, prompter)

	deleted, err := client.Delete(context.Background(), "T", DeleteOptions{Confirm: true})
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, runner.calls)
}

func TestDeleteHeadlessConfirmFails(t *testing.T) {
	runner := &fakeRunner{}
	prompter := &fakePrompter{confirmErr: &InteractivityError{Op: "confirmation"}}
	client := newTestClient(runner, prompter)

	_, err := client.Delete(context.Background(), "T", DeleteOptions{Confirm: true})
	require.Error(t, err)
	assert.Zero(t, runner.calls)
}

func TestCommandErrorSurfacesVerbatim(t *testing.T) {
	runner := &fakeRunner{err: &CommandError{ExitCode: 1, Output: []string{"ERROR: The system cannot find the task."}}}
	client := newTestClient(runner, nil)

	err := client.Run(context.Background(), "Missing")
	require.Error(t, err)
	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 1, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Output[0], "cannot find the task")
}

func TestMaskSecrets(t *testing.T) {
	args := []string{"/change", "/tn", `"T"`, "/ru", "alice", "/rp", "hunter2"}
	masked := maskSecrets(args)
	assert.Equal(t, "****", masked[6])
	assert.Equal(t, "hunter2", args[6], "original vector must not be mutated")
}
