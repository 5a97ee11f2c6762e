// Copyright 2023 Vexec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"context"
	gotime "time"

	"github.com/vexecdb/vexec/pkg/common/vxerr"
)

// Temporal instants are stored as integer tick counts so comparison kernels
// treat them exactly like the other fixed-size numerics.
//
//	Date      days since the Unix epoch
//	Datetime  microseconds since the Unix epoch, no zone
//	Time      microseconds since midnight
//	Timestamp microseconds since the Unix epoch, UTC
type (
	Date      int32
	Datetime  int64
	Time      int64
	Timestamp int64
)

const (
	microsPerSecond = 1000000
	secondsPerDay   = 24 * 60 * 60
	microsPerDay    = secondsPerDay * microsPerSecond
)

const (
	datetimeLayout  = "2006-01-02 15:04:05"
	datetimeLayout6 = "2006-01-02 15:04:05.999999"
	dateLayout      = "2006-01-02"
)

// ParseDatetime parses "YYYY-MM-DD hh:mm:ss[.ffffff]" and "YYYY-MM-DD".
func ParseDatetime(s string) (Datetime, error) {
	for _, layout := range []string{datetimeLayout6, datetimeLayout, dateLayout} {
		if t, err := gotime.Parse(layout, s); err == nil {
			return FromGoTime(t), nil
		}
	}
	return 0, vxerr.NewInvalidArg(context.Background(), "datetime", s)
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := gotime.Parse(dateLayout, s)
	if err != nil {
		return 0, vxerr.NewInvalidArg(context.Background(), "date", s)
	}
	return Date(t.Unix() / secondsPerDay), nil
}

func FromGoTime(t gotime.Time) Datetime {
	return Datetime(t.Unix()*microsPerSecond + int64(t.Nanosecond())/1000)
}

func (dt Datetime) ToGoTime() gotime.Time {
	sec := int64(dt) / microsPerSecond
	usec := int64(dt) % microsPerSecond
	if usec < 0 {
		sec--
		usec += microsPerSecond
	}
	return gotime.Unix(sec, usec*1000).UTC()
}

func (dt Datetime) String() string {
	t := dt.ToGoTime()
	if t.Nanosecond() == 0 {
		return t.Format(datetimeLayout)
	}
	return t.Format(datetimeLayout6)
}

func (dt Datetime) ToDate() Date {
	d := int64(dt) / microsPerDay
	if int64(dt) < 0 && int64(dt)%microsPerDay != 0 {
		d--
	}
	return Date(d)
}

func (d Date) ToDatetime() Datetime {
	return Datetime(int64(d) * microsPerDay)
}

func (d Date) String() string {
	return gotime.Unix(int64(d)*secondsPerDay, 0).UTC().Format(dateLayout)
}

func (ts Timestamp) String() string {
	return Datetime(ts).String() + " UTC"
}

func (t Time) String() string {
	us := int64(t)
	h := us / (3600 * microsPerSecond)
	us -= h * 3600 * microsPerSecond
	m := us / (60 * microsPerSecond)
	us -= m * 60 * microsPerSecond
	s := us / microsPerSecond
	return gotime.Date(0, 1, 1, int(h), int(m), int(s), 0, gotime.UTC).Format("15:04:05")
}
