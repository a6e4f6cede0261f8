package cardsync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	workflowRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingoanki",
			Name:      "workflow_runs_total",
			Help:      "Finished workflow runs by outcome.",
		},
		[]string{"workflow", "status"},
	)

	notesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lingoanki",
			Name:      "notes_created_total",
			Help:      "Notes accepted by Anki.",
		},
	)

	notesDuplicateTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lingoanki",
			Name:      "notes_duplicate_total",
			Help:      "Notes rejected by Anki as duplicates.",
		},
	)

	entriesPromotedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lingoanki",
			Name:      "entries_promoted_total",
			Help:      "Entries moved to the known category by progress sync.",
		},
	)
)
