package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	exists bool
	err    error
}

func (s stubChecker) PageExists(ctx context.Context, title *wiki.Title) (bool, error) {
	return s.exists, s.err
}

func TestRecordOutcome(t *testing.T) {
	m := New()

	m.RecordOutcome("redirect")
	m.RecordOutcome("redirect")
	m.RecordOutcome("invalid_title")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.outcomes.WithLabelValues("redirect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("invalid_title")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.outcomes.WithLabelValues("already_exists")))
}

func TestTimePageChecker(t *testing.T) {
	title := &wiki.Title{Namespace: wiki.NamespaceMain, LocalName: "Foo"}
	storeErr := errors.New("locked")

	tests := []struct {
		name    string
		checker stubChecker
		result  string
	}{
		{"missing", stubChecker{}, "missing"},
		{"exists", stubChecker{exists: true}, "exists"},
		{"error", stubChecker{err: storeErr}, "error"},
		{"timeout", stubChecker{err: fmt.Errorf("%w: %w", wiki.ErrStoreUnavailable, context.DeadlineExceeded)}, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			checker := m.TimePageChecker(tt.checker)

			exists, err := checker.PageExists(context.Background(), title)
			assert.Equal(t, tt.checker.exists, exists)
			assert.Equal(t, tt.checker.err, err)

			count, err := testutil.GatherAndCount(m.Registry, "createpage_store_check_duration_seconds")
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			families, err := m.Registry.Gather()
			require.NoError(t, err)
			require.Len(t, families, 1)
			require.Len(t, families[0].GetMetric(), 1)
			label := families[0].GetMetric()[0].GetLabel()[0]
			assert.Equal(t, "result", label.GetName())
			assert.Equal(t, tt.result, label.GetValue())
		})
	}
}
