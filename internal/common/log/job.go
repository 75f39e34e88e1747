package log

import (
	"context"
	"time"
)

// LogJob records the result of one worker job execution.
func LogJob(ctx context.Context, jobName, version, date string, started time.Time, err error) {
	if date == "" {
		date = "today"
	}

	fields := []Field{
		String("job-name", jobName),
		String("version", version),
		String("execution-date", date),
		Duration("elapsed", time.Since(started)),
	}
	if err != nil {
		Error(ctx, "[JOB] failed", append(fields, Err(err))...)
		return
	}
	Info(ctx, "[JOB] done", fields...)
}
