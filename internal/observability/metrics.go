// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photogram_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedBuilds counts feed assemblies.
	FeedBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photogram_feed_builds_total",
		Help: "Total number of feed and suggestion assemblies",
	})

	// LikeToggles counts like toggles by resulting action.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photogram_like_toggles_total",
		Help: "Total number of like toggles by action (like/unlike)",
	}, []string{"action"})

	// FollowToggles counts follow toggles by resulting action.
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photogram_follow_toggles_total",
		Help: "Total number of follow toggles by action (follow/unfollow)",
	}, []string{"action"})

	// SignupFailures counts rejected signups by reason.
	SignupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photogram_signup_failures_total",
		Help: "Total number of rejected signups by reason",
	}, []string{"reason"})
)
