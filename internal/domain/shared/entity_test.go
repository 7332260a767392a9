package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
}

func TestMarkUpdated(t *testing.T) {
	e := BaseEntity{
		ID:        uuid.New(),
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	}

	before := e.UpdatedAt
	e.MarkUpdated()

	assert.True(t, e.UpdatedAt.After(before))
	assert.Equal(t, e.CreatedAt, e.GetCreatedAt())
}
