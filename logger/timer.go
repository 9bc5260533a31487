package logger

import "time"

type Timer struct {
	StartTime time.Time
	Name      string
	Console   *Console
}

// Elapsed returns the time since the timer started without printing anything.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.StartTime)
}

func (t *Timer) End() time.Duration {
	duration := t.Elapsed()
	t.Console.Info("%s completed in %s", t.Name, FormatDuration(duration))
	return duration
}
