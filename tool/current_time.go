// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tool

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"
)

type currentTimeParams struct {
	Timezone string `json:"timezone,omitempty" description:"IANA timezone such as Asia/Tokyo, defaults to UTC"`
}

// CurrentTime returns a tool reporting the current time in RFC 3339 format
func CurrentTime() Tool {
	return currentTime(time.Now)
}

func currentTime(now func() time.Time) Tool {
	t, _ := NewFunctionTool("current_time", "Returns the current date and time in RFC 3339 format for a timezone.",
		func(_ context.Context, p currentTimeParams) (any, error) {
			tz := p.Timezone
			if tz == "" {
				tz = "UTC"
			}
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
			}
			return now().In(loc).Format(time.RFC3339), nil
		})
	return t
}
