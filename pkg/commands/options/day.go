package options

import (
	"github.com/spf13/cobra"
)

// DayOptions picks the record a command works on.
type DayOptions struct {
	Tomorrow bool
}

func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().BoolVarP(&o.Tomorrow, "tomorrow", "t", false,
		"Work on tomorrow instead of today.")
}

// Offset is the number of days past the anchor.
func (o *DayOptions) Offset() int {
	if o.Tomorrow {
		return 1
	}
	return 0
}
