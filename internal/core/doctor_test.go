package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmitter struct{ events []Event }

func (r *recordingEmitter) Emit(ev Event) { r.events = append(r.events, ev) }

func TestDoctorAllOK(t *testing.T) {
	xcrun, _ := writeFakeXcrun(t, "echo 'xcresulttool version 22608, format version 3.49 (current)'\n")
	cfg := Config{Xcrun: xcrun, DerivedDataPath: t.TempDir()}
	em := &recordingEmitter{}

	rep := Doctor(context.Background(), cfg, em)

	require.Len(t, rep.Checks, 2)
	assert.True(t, rep.OK())
	assert.Contains(t, rep.Checks[0].Detail, "22608")
	assert.Empty(t, em.events)
}

func TestDoctorFlagsLegacyRequirement(t *testing.T) {
	xcrun, _ := writeFakeXcrun(t, "echo 'xcresulttool version 23021, format version 3.53 (current)'\n")
	cfg := Config{Xcrun: xcrun, DerivedDataPath: t.TempDir()}

	rep := Doctor(context.Background(), cfg, nil)
	assert.False(t, rep.OK())
	assert.False(t, rep.Checks[0].OK)

	cfg.Legacy = true
	rep = Doctor(context.Background(), cfg, nil)
	assert.True(t, rep.OK())
}

func TestDoctorReportsFailures(t *testing.T) {
	xcrun, _ := writeFakeXcrun(t, "echo 'tool missing' >&2\nexit 72\n")
	cfg := Config{Xcrun: xcrun, DerivedDataPath: "/nonexistent/DerivedData"}
	em := &recordingEmitter{}

	rep := Doctor(context.Background(), cfg, em)

	assert.False(t, rep.OK())
	for _, c := range rep.Checks {
		assert.False(t, c.OK, c.Name)
		assert.NotEmpty(t, c.Hint, c.Name)
	}
	assert.Contains(t, rep.Checks[0].Detail, "tool missing")
	assert.Len(t, em.events, 2)
}
