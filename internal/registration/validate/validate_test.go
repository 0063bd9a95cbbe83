package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain text", raw: "Ana Cruz", want: "Ana Cruz"},
		{name: "trims whitespace", raw: "  0917 \n", want: "0917"},
		{name: "empty", raw: "", wantErr: ErrEmpty},
		{name: "whitespace only", raw: "   ", wantErr: ErrEmpty},
		{name: "permissive about format", raw: "!@# not a phone", want: "!@# not a phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVehicleCount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr error
	}{
		{name: "lower bound", raw: "1", want: 1},
		{name: "upper bound", raw: "3", want: 3},
		{name: "trims whitespace", raw: " 2 ", want: 2},
		{name: "zero", raw: "0", wantErr: ErrOutOfRange},
		{name: "too many", raw: "5", wantErr: ErrOutOfRange},
		{name: "negative", raw: "-1", wantErr: ErrOutOfRange},
		{name: "not numeric", raw: "two", wantErr: ErrNotANumber},
		{name: "empty", raw: "", wantErr: ErrNotANumber},
		{name: "float", raw: "1.5", wantErr: ErrNotANumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VehicleCount(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
