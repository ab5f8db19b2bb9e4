package schtasks

import "strconv"

// createSpec holds the final, already-normalised values for one create
// invocation. Entry points on Client fill it in after family-specific
// validation; buildCreateArgs does the cross-field checks.
type createSpec struct {
	taskName     string
	taskRun      string
	scheduleType ScheduleType

	modifier  string
	day       string // comma-joined day codes or a day of month
	months    string // comma-joined month codes
	idleTime  int    // minutes, 0 means absent
	startTime string
	endTime   string
	duration  string // HHHH:MM, passed through unchecked
	interval  int    // /ri repetition interval in minutes, 0 means absent
	startDate string
	endDate   string
	runLevel  string
	runAsUser string
	password  string

	killAtDurationEnd bool // /k
	deleteWhenDone    bool // /z
	force             bool // /f
	interactiveOnly   bool // /it
}

func quote(s string) string {
	return `"` + s + `"`
}

// buildCreateArgs assembles the full argument vector for a create operation.
// Any validation failure aborts the build; no partial vector is ever
// returned.
func buildCreateArgs(s *createSpec) ([]string, error) {
	if err := ValidateTaskName(s.taskName); err != nil {
		return nil, err
	}
	if s.taskRun == "" {
		return nil, newValidationError("task command", "target to run cannot be empty")
	}
	if s.scheduleType == "" {
		return nil, newValidationError("schedule type", "schedule family is required")
	}
	if s.endTime != "" && s.duration != "" {
		return nil, newValidationError("end time", "end time and duration cannot both be set")
	}

	args := []string{
		"/create",
		"/sc", string(s.scheduleType),
		"/tn", quote(s.taskName),
		"/tr", quote(s.taskRun),
	}

	if s.modifier != "" {
		args = append(args, "/mo", s.modifier)
	}
	if s.day != "" {
		args = append(args, "/d", s.day)
	}
	if s.months != "" {
		args = append(args, "/m", s.months)
	}
	if s.idleTime != 0 {
		if err := ValidateIdleTime(s.idleTime); err != nil {
			return nil, err
		}
		args = append(args, "/i", strconv.Itoa(s.idleTime))
	}
	if s.startTime != "" {
		if err := ValidateTime(s.startTime); err != nil {
			return nil, err
		}
		args = append(args, "/st", s.startTime)
	}
	if s.endTime != "" {
		if err := ValidateTime(s.endTime); err != nil {
			return nil, err
		}
		args = append(args, "/et", s.endTime)
	}
	if s.duration != "" {
		args = append(args, "/du", s.duration)
	}
	if s.interval != 0 {
		if err := ValidateInterval(s.interval); err != nil {
			return nil, err
		}
		args = append(args, "/ri", strconv.Itoa(s.interval))
	}
	if s.startDate != "" {
		d, err := NormalizeDate(s.startDate)
		if err != nil {
			return nil, err
		}
		args = append(args, "/sd", d)
	}
	if s.endDate != "" {
		d, err := NormalizeDate(s.endDate)
		if err != nil {
			return nil, err
		}
		args = append(args, "/ed", d)
	}
	if s.runLevel != "" {
		rl, err := normalizeRunLevel(s.runLevel)
		if err != nil {
			return nil, err
		}
		args = append(args, "/rl", rl)
	}
	if s.runAsUser != "" {
		args = append(args, "/ru", s.runAsUser)
	}
	if s.password != "" {
		args = append(args, "/rp", s.password)
	}

	if s.killAtDurationEnd {
		args = append(args, "/k")
	}
	if s.deleteWhenDone {
		args = append(args, "/z")
	}
	if s.force {
		args = append(args, "/f")
	}
	if s.interactiveOnly {
		args = append(args, "/it")
	}

	return args, nil
}

// changeSpec is the mutable subset of task fields for a change operation.
type changeSpec struct {
	taskName        string
	taskRun         string
	startTime       string
	endTime         string
	duration        string
	interval        int
	startDate       string
	endDate         string
	runLevel        string
	runAsUser       string
	password        string
	enable          *bool
	interactiveOnly bool
}

func buildChangeArgs(s *changeSpec) ([]string, error) {
	if err := ValidateTaskName(s.taskName); err != nil {
		return nil, err
	}
	if s.endTime != "" && s.duration != "" {
		return nil, newValidationError("end time", "end time and duration cannot both be set")
	}

	args := []string{"/change", "/tn", quote(s.taskName)}

	if s.taskRun != "" {
		args = append(args, "/tr", quote(s.taskRun))
	}
	if s.startTime != "" {
		if err := ValidateTime(s.startTime); err != nil {
			return nil, err
		}
		args = append(args, "/st", s.startTime)
	}
	if s.endTime != "" {
		if err := ValidateTime(s.endTime); err != nil {
			return nil, err
		}
		args = append(args, "/et", s.endTime)
	}
	if s.duration != "" {
		args = append(args, "/du", s.duration)
	}
	if s.interval != 0 {
		if err := ValidateInterval(s.interval); err != nil {
			return nil, err
		}
		args = append(args, "/ri", strconv.Itoa(s.interval))
	}
	if s.startDate != "" {
		d, err := NormalizeDate(s.startDate)
		if err != nil {
			return nil, err
		}
		args = append(args, "/sd", d)
	}
	if s.endDate != "" {
		d, err := NormalizeDate(s.endDate)
		if err != nil {
			return nil, err
		}
		args = append(args, "/ed", d)
	}
	if s.runLevel != "" {
		rl, err := normalizeRunLevel(s.runLevel)
		if err != nil {
			return nil, err
		}
		args = append(args, "/rl", rl)
	}
	if s.runAsUser != "" {
		args = append(args, "/ru", s.runAsUser)
	}
	if s.password != "" {
		args = append(args, "/rp", s.password)
	}
	if s.enable != nil {
		if *s.enable {
			args = append(args, "/enable")
		} else {
			args = append(args, "/disable")
		}
	}
	if s.interactiveOnly {
		args = append(args, "/it")
	}

	return args, nil
}
