package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gripper_commands_total",
		Help: "The total number of commands dispatched",
	}, []string{"task", "result"})

	parseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gripper_parse_errors_total",
		Help: "The total number of lines that failed JSON parsing",
	})
)
