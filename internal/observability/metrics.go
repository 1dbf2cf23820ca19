// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvestmentsApplied counts investments committed by the funding ledger,
	// labeled by outcome ("created" or "replayed").
	InvestmentsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helios_investments_applied_total",
		Help: "Total number of investment requests committed by outcome",
	}, []string{"outcome"})

	// InvestmentAmountTotal accumulates the invested amounts in dollars.
	InvestmentAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helios_investment_amount_dollars_total",
		Help: "Total dollar amount of committed investments",
	})

	// PortfolioPushes counts portfolio update messages published to the push channel.
	PortfolioPushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "helios_portfolio_pushes_total",
		Help: "Total number of portfolio update messages published",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "helios_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)
