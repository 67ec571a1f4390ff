package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

var clockLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// timeValue is a pflag.Value holding an optional point in time.
type timeValue struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*timeValue)(nil)

func (v *timeValue) String() string {
	if !v.set {
		return ""
	}
	return v.t.Format(time.RFC3339)
}

// Set accepts RFC3339, or a local "2006-01-02T15:04" / "2006-01-02".
func (v *timeValue) Set(s string) error {
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			v.t, v.set = t, true
			return nil
		}
	}
	return fmt.Errorf("invalid time %q (want RFC3339, e.g. 2026-03-10T14:00:00Z)", s)
}

func (v *timeValue) Type() string { return "time" }
