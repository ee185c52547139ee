package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"ghostwriter-api/internal/domain/repository"
)

func TestTranslateInsertErr(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "idx_parts_project_order"})
	assert.ErrorIs(t, translateInsertErr(dup), repository.ErrOrderIndexConflict)

	fk := &pq.Error{Code: "23503"}
	assert.Equal(t, error(fk), translateInsertErr(fk))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateInsertErr(plain))
}

func TestAffected(t *testing.T) {
	assert.ErrorIs(t, affected(&gorm.DB{RowsAffected: 0}), repository.ErrNotFound)
	assert.NoError(t, affected(&gorm.DB{RowsAffected: 1}))

	boom := errors.New("boom")
	assert.Equal(t, boom, affected(&gorm.DB{Error: boom}))
}
