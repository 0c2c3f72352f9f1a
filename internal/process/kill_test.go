package process

import "testing"

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Unknown PID
// ---------------------------------------------------------------------------

func TestKillProcessGroup_UnknownPID(t *testing.T) {
	t.Parallel()

	// PID 0 and real PIDs would hit live processes; an unused PID must be
	// a silent no-op.
	KillProcessGroup(999999999)
}
