package schtasks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vorpalvorpal/schtask/internal/consts"
	"github.com/vorpalvorpal/schtask/internal/pkg/logs"
)

// Client wraps the external scheduler CLI. Every operation validates its
// input, assembles one argument vector, performs at most one blocking
// invocation and parses the result. The client itself holds no task state.
type Client struct {
	bin         string
	interpreter string
	execDir     string
	runner      Runner
	prompter    Prompter
}

type Option func(*Client)

// WithBin overrides the scheduler executable.
func WithBin(bin string) Option {
	return func(c *Client) {
		if strings.TrimSpace(bin) != "" {
			c.bin = strings.TrimSpace(bin)
		}
	}
}

// WithInterpreter sets a default script interpreter for create operations.
func WithInterpreter(path string) Option {
	return func(c *Client) { c.interpreter = strings.TrimSpace(path) }
}

// WithExecDir sets the default execution directory embedded into task
// commands.
func WithExecDir(dir string) Option {
	return func(c *Client) { c.execDir = strings.TrimSpace(dir) }
}

// WithRunner injects the process runner, mainly for tests.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		if r != nil {
			c.runner = r
		}
	}
}

// WithPrompter injects the interactive capability, mainly for tests and
// headless callers.
func WithPrompter(p Prompter) Option {
	return func(c *Client) {
		if p != nil {
			c.prompter = p
		}
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		bin:      consts.DefaultSchedulerBin,
		runner:   NewExecRunner(),
		prompter: NewTerminalPrompter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateRequest carries the user-facing parameters of a create operation.
// Family-specific fields are validated by the entry point that uses them.
type CreateRequest struct {
	TaskName string
	// TaskRun is the script or executable the task will run.
	TaskRun string
	// Interpreter overrides the client default interpreter. Set
	// NoInterpreter to run TaskRun directly.
	Interpreter   string
	NoInterpreter bool
	// ExecDir overrides the client default execution directory.
	ExecDir string

	Modifier  string
	Days      []string
	Months    []string
	IdleTime  int
	StartTime string
	EndTime   string
	Duration  string
	Interval  int
	StartDate string
	EndDate   string
	RunLevel  string
	RunAsUser string
	Password  string

	KillAtDurationEnd bool
	DeleteWhenDone    bool
	Force             bool
	InteractiveOnly   bool
}

func (c *Client) scriptFor(req CreateRequest) string {
	if req.NoInterpreter {
		return ""
	}
	if req.Interpreter != "" {
		return req.Interpreter
	}
	return c.interpreter
}

func (c *Client) execDirFor(dir string) string {
	if strings.TrimSpace(dir) != "" {
		return dir
	}
	return c.execDir
}

// CreateMinute schedules a task every N minutes (modifier 1-1439).
func (c *Client) CreateMinute(ctx context.Context, req CreateRequest) error {
	if req.Modifier != "" {
		if err := validateNumericModifier(ScheduleMinute, req.Modifier); err != nil {
			return err
		}
	}
	return c.create(ctx, ScheduleMinute, req, req.Modifier, "", "")
}

// CreateHourly schedules a task every N hours (modifier 1-23).
func (c *Client) CreateHourly(ctx context.Context, req CreateRequest) error {
	if req.Modifier != "" {
		if err := validateNumericModifier(ScheduleHourly, req.Modifier); err != nil {
			return err
		}
	}
	return c.create(ctx, ScheduleHourly, req, req.Modifier, "", "")
}

// CreateDaily schedules a task every N days (modifier 1-365).
func (c *Client) CreateDaily(ctx context.Context, req CreateRequest) error {
	if req.Modifier != "" {
		if err := validateNumericModifier(ScheduleDaily, req.Modifier); err != nil {
			return err
		}
	}
	return c.create(ctx, ScheduleDaily, req, req.Modifier, "", "")
}

// CreateWeekly schedules a task every N weeks (modifier 1-52) on the given
// days of the week.
func (c *Client) CreateWeekly(ctx context.Context, req CreateRequest) error {
	if req.Modifier != "" {
		if err := validateNumericModifier(ScheduleWeekly, req.Modifier); err != nil {
			return err
		}
	}
	var day string
	if len(req.Days) > 0 {
		var err error
		if day, err = NormalizeDays(req.Days); err != nil {
			return err
		}
	}
	return c.create(ctx, ScheduleWeekly, req, req.Modifier, day, "")
}

// CreateMonthly schedules a monthly task. The modifier selects one of three
// modes: a numeric month count (days are then calendar days 1-31), an
// ordinal week of month (FIRST..FOURTH or LAST, requiring a day of week),
// or LASTDAY (the last calendar day; a supplied day is ignored with a
// warning).
func (c *Client) CreateMonthly(ctx context.Context, req CreateRequest) error {
	mode, warning, err := resolveMonthlyModifier(req.Modifier, len(req.Days) > 0)
	if err != nil {
		return err
	}
	if warning != "" {
		logs.Warn("%s", warning)
	}

	var day string
	switch mode {
	case monthlyOrdinal:
		if day, err = NormalizeDays(req.Days); err != nil {
			return err
		}
	case monthlyNumeric:
		if day, err = joinDaysOfMonth(req.Days); err != nil {
			return err
		}
	case monthlyLastDay:
		// day stays empty
	}

	var months string
	if len(req.Months) > 0 {
		if months, err = NormalizeMonths(req.Months); err != nil {
			return err
		}
	}

	modifier := strings.ToUpper(strings.TrimSpace(req.Modifier))
	return c.create(ctx, ScheduleMonthly, req, modifier, day, months)
}

// CreateOnce schedules a single run at the given start time.
func (c *Client) CreateOnce(ctx context.Context, req CreateRequest) error {
	if req.StartTime == "" {
		return newValidationError("start time", "a start time is required for a one-off task")
	}
	return c.create(ctx, ScheduleOnce, req, "", "", "")
}

// CreateOnStart schedules a task to run at system start.
func (c *Client) CreateOnStart(ctx context.Context, req CreateRequest) error {
	return c.create(ctx, ScheduleOnStart, req, "", "", "")
}

// CreateOnLogon schedules a task to run when the user logs on.
func (c *Client) CreateOnLogon(ctx context.Context, req CreateRequest) error {
	return c.create(ctx, ScheduleOnLogon, req, "", "", "")
}

// CreateOnIdle schedules a task to run after the machine has been idle for
// the given number of minutes.
func (c *Client) CreateOnIdle(ctx context.Context, req CreateRequest) error {
	if req.IdleTime == 0 {
		return newValidationError("idle time", "an idle time is required for an on-idle task")
	}
	if err := ValidateIdleTime(req.IdleTime); err != nil {
		return err
	}
	return c.create(ctx, ScheduleOnIdle, req, "", "", "")
}

func (c *Client) create(ctx context.Context, st ScheduleType, req CreateRequest, modifier, day, months string) error {
	command, err := BuildTaskCommand(req.TaskRun, c.scriptFor(req), c.execDirFor(req.ExecDir))
	if err != nil {
		return err
	}

	spec := &createSpec{
		taskName:          req.TaskName,
		taskRun:           command,
		scheduleType:      st,
		modifier:          modifier,
		day:               day,
		months:            months,
		idleTime:          req.IdleTime,
		startTime:         req.StartTime,
		endTime:           req.EndTime,
		duration:          req.Duration,
		interval:          req.Interval,
		startDate:         req.StartDate,
		endDate:           req.EndDate,
		runLevel:          req.RunLevel,
		runAsUser:         req.RunAsUser,
		password:          req.Password,
		killAtDurationEnd: req.KillAtDurationEnd,
		deleteWhenDone:    req.DeleteWhenDone,
		force:             req.Force,
		interactiveOnly:   req.InteractiveOnly,
	}

	args, err := buildCreateArgs(spec)
	if err != nil {
		return err
	}

	if _, err := c.invoke(ctx, args); err != nil {
		return err
	}
	logs.Info("created %s task %q", strings.ToLower(string(st)), req.TaskName)
	return nil
}

func joinDaysOfMonth(days []string) (string, error) {
	if len(days) == 0 {
		return "", nil
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		n, err := strconv.Atoi(strings.TrimSpace(d))
		if err != nil {
			return "", newValidationError("day of month", "%q is not an integer day of month", d)
		}
		if err := validateDayOfMonth(n); err != nil {
			return "", err
		}
		out = append(out, strconv.Itoa(n))
	}
	return strings.Join(out, ","), nil
}

// systemAccounts run without a stored credential, so reassigning a task to
// them never prompts for a password.
var systemAccounts = map[string]bool{
	"SYSTEM":              true,
	`NT AUTHORITY\SYSTEM`: true,
}

// ChangeOptions is the subset of task fields a change operation can mutate.
// A nil Enable leaves the enabled state alone.
type ChangeOptions struct {
	TaskRun       string
	Interpreter   string
	NoInterpreter bool
	ExecDir       string

	StartTime string
	EndTime   string
	Duration  string
	Interval  int
	StartDate string
	EndDate   string
	RunLevel  string
	RunAsUser string
	Password  string

	Enable          *bool
	InteractiveOnly bool
}

// Change mutates fields of an existing task. Reassigning the task to a
// non-system identity without a supplied password prompts interactively for
// one; a headless session fails with an InteractivityError before anything
// is invoked.
func (c *Client) Change(ctx context.Context, taskName string, o ChangeOptions) error {
	spec := &changeSpec{
		taskName:        taskName,
		startTime:       o.StartTime,
		endTime:         o.EndTime,
		duration:        o.Duration,
		interval:        o.Interval,
		startDate:       o.StartDate,
		endDate:         o.EndDate,
		runLevel:        o.RunLevel,
		runAsUser:       o.RunAsUser,
		password:        o.Password,
		enable:          o.Enable,
		interactiveOnly: o.InteractiveOnly,
	}

	if o.TaskRun != "" {
		script := ""
		if !o.NoInterpreter {
			script = o.Interpreter
			if script == "" {
				script = c.interpreter
			}
		}
		command, err := BuildTaskCommand(o.TaskRun, script, c.execDirFor(o.ExecDir))
		if err != nil {
			return err
		}
		spec.taskRun = command
	}

	if o.RunAsUser != "" && o.Password == "" && !systemAccounts[strings.ToUpper(strings.TrimSpace(o.RunAsUser))] {
		secret, err := c.prompter.Secret(fmt.Sprintf("Password for %s", o.RunAsUser))
		if err != nil {
			return err
		}
		spec.password = secret
	}

	args, err := buildChangeArgs(spec)
	if err != nil {
		return err
	}

	if _, err := c.invoke(ctx, args); err != nil {
		return err
	}
	logs.Info("changed task %q", taskName)
	return nil
}

// QueryOptions controls the shape of a task listing.
type QueryOptions struct {
	// Verbose selects the full field set; otherwise the fixed 3-column
	// schema is used.
	Verbose bool
	// Prefix filters the listing client-side by task name prefix.
	Prefix string
}

// Query lists scheduled tasks as string-typed records.
func (c *Client) Query(ctx context.Context, o QueryOptions) ([]TaskRecord, error) {
	args := []string{"/query", "/fo", "CSV"}
	if o.Verbose {
		args = append(args, "/v")
	} else {
		args = append(args, "/nh")
	}

	lines, err := c.invoke(ctx, args)
	if err != nil {
		return nil, err
	}

	records, err := parseTaskList(lines, o.Verbose)
	if err != nil {
		return nil, err
	}

	prefix := strings.TrimSpace(o.Prefix)
	if prefix == "" {
		return records, nil
	}
	filtered := make([]TaskRecord, 0, len(records))
	for _, rec := range records {
		if strings.HasPrefix(strings.TrimPrefix(recordTaskName(rec), `\`), prefix) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

func recordTaskName(rec TaskRecord) string {
	if name, ok := rec["task_name"]; ok {
		return name
	}
	return rec["taskname"]
}

// Run starts a task immediately.
func (c *Client) Run(ctx context.Context, taskName string) error {
	if err := ValidateTaskName(taskName); err != nil {
		return err
	}
	_, err := c.invoke(ctx, []string{"/run", "/tn", quote(taskName)})
	return err
}

// Stop ends a running task instance.
func (c *Client) Stop(ctx context.Context, taskName string) error {
	if err := ValidateTaskName(taskName); err != nil {
		return err
	}
	_, err := c.invoke(ctx, []string{"/end", "/tn", quote(taskName)})
	return err
}

// DeleteOptions controls task removal.
type DeleteOptions struct {
	// Force passes /f so running tasks are removed too.
	Force bool
	// Confirm asks for interactive y/n confirmation before proceeding.
	Confirm bool
}

// Delete removes a scheduled task. It reports false without error when the
// user declines the confirmation prompt.
func (c *Client) Delete(ctx context.Context, taskName string, o DeleteOptions) (bool, error) {
	if err := ValidateTaskName(taskName); err != nil {
		return false, err
	}

	if o.Confirm {
		ok, err := c.prompter.Confirm(fmt.Sprintf("Delete task %q", taskName))
		if err != nil {
			return false, err
		}
		if !ok {
			logs.Info("delete of task %q aborted", taskName)
			return false, nil
		}
	}

	args := []string{"/delete", "/tn", quote(taskName)}
	if o.Force {
		args = append(args, "/f")
	}
	if _, err := c.invoke(ctx, args); err != nil {
		return false, err
	}
	logs.Info("deleted task %q", taskName)
	return true, nil
}

func (c *Client) invoke(ctx context.Context, args []string) ([]string, error) {
	ctx = logs.SetLogID(ctx, logs.NewLogID())
	logs.CtxDebug(ctx, "exec %s %s", c.bin, strings.Join(maskSecrets(args), " "))

	lines, err := c.runner.Run(ctx, c.bin, args)
	if err != nil {
		if cmdErr, ok := err.(*CommandError); ok {
			logs.CtxWarn(ctx, "%s exited with code %d", c.bin, cmdErr.ExitCode)
		}
		return nil, err
	}
	return lines, nil
}

// maskSecrets hides the /rp password value in logged argument vectors.
func maskSecrets(args []string) []string {
	masked := make([]string, len(args))
	copy(masked, args)
	for i := 0; i < len(masked)-1; i++ {
		if masked[i] == "/rp" {
			masked[i+1] = "****"
		}
	}
	return masked
}
