package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestForSharesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := Config{Enabled: true, Registry: reg}

	a := For(cfg)
	b := For(cfg)
	if a != b {
		t.Fatal("For should return the same registry for the same config")
	}

	c := For(Config{Enabled: true, Registry: reg, Namespace: "other"})
	if c == a {
		t.Fatal("a different namespace should get its own registry")
	}
}

func TestRegistryNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg, "")

	r.Traversals.WithLabelValues("s").Inc()
	r.ActiveCursors.WithLabelValues("s").Set(2)
	r.SourceFetches.WithLabelValues("redis").Inc()

	tests := []struct {
		name string
		want int
	}{
		{"seqflow_sequence_traversals_total", 1},
		{"seqflow_sequence_active_cursors", 1},
		{"seqflow_source_fetches_total", 1},
		{"seqflow_sequence_errors_total", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := testutil.GatherAndCount(reg, tt.name)
			if err != nil {
				t.Fatalf("gather: %v", err)
			}
			if n != tt.want {
				t.Errorf("got %d series, want %d", n, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Error("default config should be enabled")
	}
	if cfg.namespace() != DefaultNamespace {
		t.Errorf("namespace = %q", cfg.namespace())
	}
	if (Config{}).registerer() != prometheus.DefaultRegisterer {
		t.Error("nil registry should fall back to the default registerer")
	}
}
