package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProjectStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agencyops_project_status_transitions_total",
			Help: "Project status changes by previous and new status",
		},
		[]string{"from", "to"},
	)

	ProjectsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agencyops_projects_created_total",
			Help: "Projects created by creator role",
		},
		[]string{"creator_role"},
	)

	MilestoneCompletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agencyops_milestone_completions_total",
			Help: "Milestones moved to the completed status",
		},
	)

	NotificationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agencyops_notifications_emitted_total",
			Help: "Notification emission attempts by category and result",
		},
		[]string{"category", "result"}, // result: stored, failed
	)
)

func RecordStatusTransition(from, to string) {
	ProjectStatusTransitions.WithLabelValues(from, to).Inc()
}

func RecordProjectCreated(creatorRole string) {
	ProjectsCreated.WithLabelValues(creatorRole).Inc()
}

func RecordMilestoneCompleted() {
	MilestoneCompletions.Inc()
}

func RecordNotification(category string, isStored bool) {
	result := "stored"
	if !isStored {
		result = "failed"
	}

	NotificationsEmitted.WithLabelValues(category, result).Inc()
}
