package projects_progress

import (
	"math/rand"
	"testing"

	projects_enums "agencyops/internal/features/projects/enums"
	projects_models "agencyops/internal/features/projects/models"

	"github.com/stretchr/testify/assert"
)

var allMilestoneStatuses = []projects_enums.MilestoneStatus{
	projects_enums.MilestoneStatusNotStarted,
	projects_enums.MilestoneStatusStarted,
	projects_enums.MilestoneStatusInProgress,
	projects_enums.MilestoneStatusReview,
	projects_enums.MilestoneStatusFinalEdits,
	projects_enums.MilestoneStatusCompleted,
}

func milestonesWithStatuses(statuses ...projects_enums.MilestoneStatus) []*projects_models.Milestone {
	milestones := make([]*projects_models.Milestone, 0, len(statuses))
	for i, status := range statuses {
		milestones = append(milestones, &projects_models.Milestone{Status: status, OrderIndex: i + 1})
	}

	return milestones
}

func Test_ComputeProgress_WhenNoMilestones_ReturnsZero(t *testing.T) {
	assert.Equal(t, 0, ComputeProgress(nil))
	assert.Equal(t, 0, ComputeProgress([]*projects_models.Milestone{}))
}

func Test_ComputeProgress_WhenAllCompleted_ReturnsHundred(t *testing.T) {
	for size := 1; size <= 12; size++ {
		statuses := make([]projects_enums.MilestoneStatus, size)
		for i := range statuses {
			statuses[i] = projects_enums.MilestoneStatusCompleted
		}

		assert.Equal(t, 100, ComputeProgress(milestonesWithStatuses(statuses...)), "size %d", size)
	}
}

func Test_ComputeProgress_WhenAllNotStarted_ReturnsZero(t *testing.T) {
	for size := 1; size <= 12; size++ {
		statuses := make([]projects_enums.MilestoneStatus, size)
		for i := range statuses {
			statuses[i] = projects_enums.MilestoneStatusNotStarted
		}

		assert.Equal(t, 0, ComputeProgress(milestonesWithStatuses(statuses...)), "size %d", size)
	}
}

func Test_ComputeProgress_OneCompletedOneInProgressOfFive_ReturnsThirty(t *testing.T) {
	milestones := milestonesWithStatuses(
		projects_enums.MilestoneStatusCompleted,
		projects_enums.MilestoneStatusInProgress,
		projects_enums.MilestoneStatusNotStarted,
		projects_enums.MilestoneStatusNotStarted,
		projects_enums.MilestoneStatusNotStarted,
	)

	assert.Equal(t, 30, ComputeProgress(milestones))
}

func Test_ComputeProgress_WhenQuotientHasHalf_RoundsUp(t *testing.T) {
	// 50 / 4 = 12.5
	milestones := milestonesWithStatuses(
		projects_enums.MilestoneStatusReview,
		projects_enums.MilestoneStatusNotStarted,
		projects_enums.MilestoneStatusNotStarted,
		projects_enums.MilestoneStatusNotStarted,
	)
	assert.Equal(t, 13, ComputeProgress(milestones))

	// 150 / 3 = 50, 100 / 3 = 33.33, 200 / 3 = 66.67
	assert.Equal(t, 50, ComputeProgress(milestonesWithStatuses(
		projects_enums.MilestoneStatusCompleted,
		projects_enums.MilestoneStatusStarted,
		projects_enums.MilestoneStatusNotStarted,
	)))
	assert.Equal(t, 33, ComputeProgress(milestonesWithStatuses(
		projects_enums.MilestoneStatusCompleted,
		projects_enums.MilestoneStatusNotStarted,
		projects_enums.MilestoneStatusNotStarted,
	)))
	assert.Equal(t, 67, ComputeProgress(milestonesWithStatuses(
		projects_enums.MilestoneStatusCompleted,
		projects_enums.MilestoneStatusCompleted,
		projects_enums.MilestoneStatusNotStarted,
	)))
}

func Test_ComputeProgress_ActiveStatusesWeighHalf(t *testing.T) {
	for _, status := range allMilestoneStatuses {
		if !status.IsActive() {
			continue
		}

		assert.Equal(t, 50, ComputeProgress(milestonesWithStatuses(status)), "status %s", status)
	}
}

func Test_ComputeProgress_IsIndependentOfOrder(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for range 200 {
		size := random.Intn(15) + 1
		statuses := make([]projects_enums.MilestoneStatus, size)
		for i := range statuses {
			statuses[i] = allMilestoneStatuses[random.Intn(len(allMilestoneStatuses))]
		}

		milestones := milestonesWithStatuses(statuses...)
		expected := ComputeProgress(milestones)

		random.Shuffle(len(milestones), func(i, j int) {
			milestones[i], milestones[j] = milestones[j], milestones[i]
		})

		actual := ComputeProgress(milestones)
		assert.Equal(t, expected, actual)
		assert.GreaterOrEqual(t, actual, 0)
		assert.LessOrEqual(t, actual, 100)
	}
}

func Test_NextIncomplete_ReturnsLowestOrderedUnfinishedMilestone(t *testing.T) {
	milestones := milestonesWithStatuses(
		projects_enums.MilestoneStatusCompleted,
		projects_enums.MilestoneStatusInProgress,
		projects_enums.MilestoneStatusNotStarted,
	)
	milestones[0], milestones[2] = milestones[2], milestones[0]

	next := NextIncomplete(milestones)

	assert.NotNil(t, next)
	assert.Equal(t, 2, next.OrderIndex)
}

func Test_NextIncomplete_WhenAllCompleted_ReturnsNil(t *testing.T) {
	milestones := milestonesWithStatuses(
		projects_enums.MilestoneStatusCompleted,
		projects_enums.MilestoneStatusCompleted,
	)

	assert.Nil(t, NextIncomplete(milestones))
}
