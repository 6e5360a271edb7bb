package orderview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shophub/shopctl/internal/models"
)

func TestDeriveTimelineDelivered(t *testing.T) {
	// terminal status: all milestones completed, last one also current
	tl := DeriveTimeline(models.OrderStatusDelivered, DefaultMilestones)

	assert.True(t, tl.Known)
	assert.False(t, tl.Cancelled)
	assert.Len(t, tl.Steps, 5)
	for i, step := range tl.Steps {
		assert.True(t, step.Completed, "milestone %d", i)
		assert.Equal(t, i == len(tl.Steps)-1, step.Current, "milestone %d", i)
	}
}

func TestDeriveTimelineMidway(t *testing.T) {
	tl := DeriveTimeline(models.OrderStatusPickedUp, DefaultMilestones)

	wantCompleted := []bool{true, true, true, false, false}
	for i, step := range tl.Steps {
		assert.Equal(t, wantCompleted[i], step.Completed, "milestone %d", i)
		assert.Equal(t, i == 2, step.Current, "milestone %d", i)
	}
}

func TestDeriveTimelineAliases(t *testing.T) {
	// finer-grained server statuses collapse onto the reference stages
	tests := []struct {
		status      models.OrderStatus
		wantCurrent models.OrderStatus
	}{
		{models.OrderStatusCollected, models.OrderStatusPickedUp},
		{models.OrderStatusShipped, models.OrderStatusInTransit},
		{models.OrderStatusOutForDelivery, models.OrderStatusInTransit},
		{models.OrderStatusAssigned, models.OrderStatusConfirmed},
	}
	for _, tt := range tests {
		tl := DeriveTimeline(tt.status, DefaultMilestones)
		assert.True(t, tl.Known, "%s", tt.status)
		for _, step := range tl.Steps {
			assert.Equal(t, step.Status == tt.wantCurrent, step.Current, "%s -> %s", tt.status, step.Status)
		}
	}
}

func TestDeriveTimelineCancelled(t *testing.T) {
	// cancellation is an explicit terminal branch, not a -1 index side effect
	tl := DeriveTimeline(models.OrderStatusCancelled, DefaultMilestones)

	assert.True(t, tl.Cancelled)
	assert.True(t, tl.Known)
	for i, step := range tl.Steps {
		assert.False(t, step.Completed, "milestone %d", i)
		assert.False(t, step.Current, "milestone %d", i)
	}
}

func TestDeriveTimelineUnknownStatus(t *testing.T) {
	tl := DeriveTimeline(models.OrderStatus("teleported"), DefaultMilestones)

	assert.False(t, tl.Known)
	assert.False(t, tl.Cancelled)
	for _, step := range tl.Steps {
		assert.False(t, step.Completed)
		assert.False(t, step.Current)
	}
}
