package gripper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	servoAngle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gripper_servo_angle_degrees",
		Help: "The last angle commanded to the servo",
	})

	servoMoves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gripper_servo_moves_total",
		Help: "The total number of moves written to the PWM backend",
	})
)
