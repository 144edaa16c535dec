package types

import (
	"encoding/json"
	"time"
)

// Time is a time.Time that marshals to JSON as a millisecond timestamp.
type Time time.Time

func NewTimeFromUnix(sec int64, nsec int64) Time {
	return Time(time.Unix(sec, nsec))
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) String() string {
	return time.Time(t).String()
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UnixMilli())
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*t = Time(time.UnixMilli(v))
	return nil
}
