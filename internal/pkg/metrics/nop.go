package metrics

// NopMetrics discards every metric.
type NopMetrics struct{}

var _ Collector = (*NopMetrics)(nil)

func NewNop() *NopMetrics {
	return &NopMetrics{}
}

func (n *NopMetrics) RecordDayProcessed(_ /* source */, _ /* status */ string) {}

func (n *NopMetrics) RecordDayFailed(_ /* source */ string) {}

func (n *NopMetrics) RecordPairViolations(_ /* count */ int) {}

func (n *NopMetrics) RecordSummaryRegenerated(_ /* result */ string) {}

func (n *NopMetrics) ObserveJobDuration(_ /* job */ string, _ /* seconds */ float64) {}
