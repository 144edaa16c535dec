package util

import (
	"time"
)

// TimeProfile measures how long a named piece of work took.
type TimeProfile struct {
	Name               string
	StartTime, EndTime time.Time
	Duration           time.Duration
}

func StartTimeProfile(args ...string) TimeProfile {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return TimeProfile{StartTime: time.Now(), Name: name}
}

func (p *TimeProfile) TilNow() time.Duration {
	return time.Since(p.StartTime)
}

func (p *TimeProfile) Stop() time.Duration {
	p.EndTime = time.Now()
	p.Duration = p.EndTime.Sub(p.StartTime)
	return p.Duration
}

type logFunction func(format string, args ...interface{})

// StopAndLog stops the profile, reports the duration through f and returns it.
func (p *TimeProfile) StopAndLog(f logFunction) time.Duration {
	duration := p.Stop()
	if len(p.Name) > 0 {
		f("[profile] %s %s", p.Name, duration)
	} else {
		f("[profile] %s", duration)
	}
	return duration
}
