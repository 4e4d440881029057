package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

var base = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func TestTimes(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []time.Time
	}{
		{
			name: "every 2 hours",
			expr: "0 */2 * * *",
			want: []time.Time{
				base.Add(2 * time.Hour),
				base.Add(4 * time.Hour),
				base.Add(6 * time.Hour),
			},
		},
		{
			name: "seconds field",
			expr: "*/10 * * * * *",
			want: []time.Time{
				base.Add(10 * time.Second),
				base.Add(20 * time.Second),
				base.Add(30 * time.Second),
			},
		},
		{
			name: "daily",
			expr: "@daily",
			want: []time.Time{
				time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
				time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
				time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Times(tt.expr, base)
			require.NoError(t, err)
			got, err := sequence.ToSlice(sequence.Take(s, 3))
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				require.True(t, tt.want[i].Equal(got[i]), "got %v, want %v", got[i], tt.want[i])
			}
		})
	}
}

func TestBetween(t *testing.T) {
	s, err := Between("0 * * * *", base, base.Add(3*time.Hour))
	require.NoError(t, err)

	got, err := sequence.ToSlice(s)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.True(t, base.Add(3*time.Hour).Equal(got[2]))

	_, err = Between("0 * * * *", base, base.Add(-time.Hour))
	require.ErrorIs(t, err, sferrors.ErrInvalidArgument)
}

func TestInvalidExpression(t *testing.T) {
	for _, expr := range []string{"", "not a cron", "61 * * * *"} {
		_, err := Times(expr, base)
		require.Error(t, err, expr)
		require.True(t, sferrors.IsValidationError(err), expr)
	}
}
