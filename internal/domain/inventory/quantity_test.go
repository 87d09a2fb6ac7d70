package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain/entity"
)

func TestNextQuantity(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		delta   int64
		typ     entity.MovementType
		want    int64
		wantErr error
	}{
		{"entrada", 5, 3, entity.MovementTypeIN, 8, nil},
		{"salida", 5, 3, entity.MovementTypeOUT, 2, nil},
		{"salida exacta", 5, 5, entity.MovementTypeOUT, 0, nil},
		{"ajuste absoluto", 5, 12, entity.MovementTypeADJUSTMENT, 12, nil},
		{"salida mayor al stock", 5, 6, entity.MovementTypeOUT, 0, domain.ErrInsufficientStock},
		{"delta cero", 5, 0, entity.MovementTypeIN, 0, domain.ErrInvalidInput},
		{"tipo desconocido", 5, 1, entity.MovementType("X"), 0, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextQuantity("p1", tt.current, tt.delta, tt.typ)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextQuantity_OverflowRejected(t *testing.T) {
	const max = int64(^uint64(0) >> 1)
	_, err := NextQuantity("p1", max, 1, entity.MovementTypeIN)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
