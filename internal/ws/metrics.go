package ws

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	wsPresence = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_presence_connections",
			Help: "Users with a live presence connection",
		},
	)
	wsRooms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_open_rooms",
			Help: "Rooms with at least one live connection",
		},
	)
	wsEventsRelayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_events_relayed_total",
			Help: "Events broadcast to rooms",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(wsPresence)
	prometheus.MustRegister(wsRooms)
	prometheus.MustRegister(wsEventsRelayed)
}
