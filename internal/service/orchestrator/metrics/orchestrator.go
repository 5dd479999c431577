package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"communication-platform/internal/domain"
	"communication-platform/internal/service/orchestrator"
)

const (
	median = 0.5
	p90    = 0.9
	p95    = 0.95
	p99    = 0.99

	medianError = 0.05
	p90Error    = 0.01
	p95Error    = 0.005
	p99Error    = 0.001

	maxAgeDuration = 5 * time.Minute

	resultSucceeded = "SUCCEEDED"
	resultFailed    = "FAILED"
)

// Orchestrator 为编排发送添加指标收集的装饰器
type Orchestrator struct {
	orchestrator        orchestrator.Orchestrator
	sendDurationSummary *prometheus.SummaryVec
	sendCounter         *prometheus.CounterVec
	fallbackCounter     *prometheus.CounterVec
	broadcastCounter    prometheus.Counter
}

// SendMessage 发送消息并记录指标
func (m *Orchestrator) SendMessage(ctx context.Context, msg domain.Message, opts domain.SendOptions) (domain.SendResult, error) {
	startTime := time.Now()

	result, err := m.orchestrator.SendMessage(ctx, msg, opts)

	duration := time.Since(startTime).Seconds()
	outcome := resultFailed
	if result.Success {
		outcome = resultSucceeded
	}

	m.sendCounter.WithLabelValues(result.ChannelUsed.String(), outcome).Inc()
	m.sendDurationSummary.WithLabelValues(result.ChannelUsed.String(), outcome).Observe(duration)
	if result.FallbackAttempts > 0 {
		m.fallbackCounter.WithLabelValues(outcome).Add(float64(result.FallbackAttempts))
	}
	return result, err
}

// BroadcastMessage 广播并记录指标
func (m *Orchestrator) BroadcastMessage(ctx context.Context, template domain.Message, userIDs []string) ([]domain.SendResult, error) {
	m.broadcastCounter.Inc()
	return m.orchestrator.BroadcastMessage(ctx, template, userIDs)
}

func (m *Orchestrator) GetDeliveryHistory(ctx context.Context, userID string, limit int) ([]domain.SendResult, error) {
	return m.orchestrator.GetDeliveryHistory(ctx, userID, limit)
}

func (m *Orchestrator) GetStatistics(ctx context.Context) (domain.SendStatistics, error) {
	return m.orchestrator.GetStatistics(ctx)
}

// NewOrchestrator 创建带指标收集的编排器
func NewOrchestrator(o orchestrator.Orchestrator) *Orchestrator {
	sendDurationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "communication_send_duration_seconds",
			Help: "编排发送耗时统计（秒）",
			Objectives: map[float64]float64{
				median: medianError,
				p90:    p90Error,
				p95:    p95Error,
				p99:    p99Error,
			},
			MaxAge: maxAgeDuration,
		},
		[]string{"channel", "result"},
	)

	sendCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "communication_send_total",
			Help: "编排发送总数",
		},
		[]string{"channel", "result"},
	)

	fallbackCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "communication_fallback_attempts_total",
			Help: "回退渠道尝试总数",
		},
		[]string{"result"},
	)

	broadcastCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "communication_broadcast_total",
			Help: "广播发送总数",
		},
	)

	prometheus.MustRegister(sendDurationSummary, sendCounter, fallbackCounter, broadcastCounter)

	return &Orchestrator{
		orchestrator:        o,
		sendDurationSummary: sendDurationSummary,
		sendCounter:         sendCounter,
		fallbackCounter:     fallbackCounter,
		broadcastCounter:    broadcastCounter,
	}
}
