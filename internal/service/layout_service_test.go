package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weekplan/weekplan-backend/internal/layout"
	"github.com/weekplan/weekplan-backend/internal/model"
)

func newTestLayout(t *testing.T) (*LayoutService, *ScheduleService) {
	t.Helper()
	sched, _ := newTestScheduleService(t)
	return NewLayoutService(sched, zerolog.Nop()), sched
}

func TestLayout_SnapshotEmptySchedule(t *testing.T) {
	layoutSvc, _ := newTestLayout(t)

	snap := layoutSvc.Snapshot(context.Background())
	assert.Zero(t, snap.Generation)
	assert.Empty(t, snap.Events)
	assert.Equal(t, 8, snap.Axis.MinTime)
	assert.Equal(t, 17, snap.Axis.MaxTime)
	assert.Equal(t, layout.BaselineSlotHeight, snap.SlotHeight)
}

func TestLayout_ObserveRaisesSlotHeight(t *testing.T) {
	layoutSvc, sched := newTestLayout(t)
	ctx := context.Background()
	require.NoError(t, sched.AddCourse(ctx, testCourse("c1", "Algorithms")))

	before := layoutSvc.Snapshot(ctx)
	require.Len(t, before.Events, 1)
	eventID := before.Events[0].ID

	layoutSvc.Observe(ctx, map[string]float64{eventID: 300})

	after := layoutSvc.Snapshot(ctx)
	assert.Greater(t, after.SlotHeight, before.SlotHeight)
	assert.Equal(t, before.Generation, after.Generation)
}

func TestLayout_ObserveMergesMonotonically(t *testing.T) {
	layoutSvc, sched := newTestLayout(t)
	ctx := context.Background()
	require.NoError(t, sched.AddCourse(ctx, testCourse("c1", "Algorithms")))
	require.NoError(t, sched.AddCourse(ctx, testCourse("c2", "Physics")))

	snap := layoutSvc.Snapshot(ctx)
	require.Len(t, snap.Events, 2)

	layoutSvc.Observe(ctx, map[string]float64{snap.Events[0].ID: 200})
	first := layoutSvc.Snapshot(ctx).SlotHeight

	layoutSvc.Observe(ctx, map[string]float64{snap.Events[1].ID: 150})
	second := layoutSvc.Snapshot(ctx).SlotHeight

	assert.GreaterOrEqual(t, second, first)
}

func TestLayout_ScheduleChangeResetsMeasurements(t *testing.T) {
	layoutSvc, sched := newTestLayout(t)
	ctx := context.Background()
	require.NoError(t, sched.AddCourse(ctx, testCourse("c1", "Algorithms")))

	snap := layoutSvc.Snapshot(ctx)
	layoutSvc.Observe(ctx, map[string]float64{snap.Events[0].ID: 300})
	require.Greater(t, layoutSvc.Snapshot(ctx).SlotHeight, layout.BaselineSlotHeight)

	// Any store mutation invalidates the registry.
	require.NoError(t, sched.AddCourse(ctx, testCourse("c2", "Physics")))

	after := layoutSvc.Snapshot(ctx)
	assert.Equal(t, layout.BaselineSlotHeight, after.SlotHeight)
	assert.Greater(t, after.Generation, snap.Generation)
}

func TestLayout_SettingsChangeResetsMeasurements(t *testing.T) {
	layoutSvc, sched := newTestLayout(t)
	ctx := context.Background()
	require.NoError(t, sched.AddCourse(ctx, testCourse("c1", "Algorithms")))

	snap := layoutSvc.Snapshot(ctx)
	layoutSvc.Observe(ctx, map[string]float64{snap.Events[0].ID: 300})

	settings := model.DefaultSettings()
	settings.TimeIncrement = model.Increment1Hour
	require.NoError(t, sched.UpdateSettings(ctx, settings))

	assert.Equal(t, layout.BaselineSlotHeight, layoutSvc.Snapshot(ctx).SlotHeight)
}

func TestLayout_ObserveIgnoresZeroHeights(t *testing.T) {
	layoutSvc, sched := newTestLayout(t)
	ctx := context.Background()
	require.NoError(t, sched.AddCourse(ctx, testCourse("c1", "Algorithms")))

	snap := layoutSvc.Snapshot(ctx)
	layoutSvc.Observe(ctx, map[string]float64{snap.Events[0].ID: 0})

	assert.Equal(t, layout.BaselineSlotHeight, layoutSvc.Snapshot(ctx).SlotHeight)
}
