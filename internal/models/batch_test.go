package models_test

import (
	"testing"
	"time"

	"perdami/internal/models"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 9, 4, hour, minute, 0, 0, time.Local)
}

func TestBatchForTime_Boundaries(t *testing.T) {
	assert.Equal(t, models.Batch1, models.BatchForTime(at(6, 0)), "06:00 opens Batch 1")
	assert.Equal(t, models.Batch1, models.BatchForTime(at(17, 59)), "17:59 is still Batch 1")
	assert.Equal(t, models.Batch2, models.BatchForTime(at(18, 0)), "18:00 opens Batch 2")
	assert.Equal(t, models.Batch2, models.BatchForTime(at(5, 59)), "05:59 is still Batch 2")
}

func TestBatchForTime_ExhaustiveOverAllHours(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		batch := models.BatchForTime(at(hour, 30))
		if hour >= models.Batch1StartHour && hour < models.Batch1EndHour {
			assert.Equal(t, models.Batch1, batch, "hour %d", hour)
		} else {
			assert.Equal(t, models.Batch2, batch, "hour %d", hour)
		}
	}
}

func TestOrderBatch_UsesCreationTime(t *testing.T) {
	order := models.Order{CreatedAt: at(18, 0)}
	assert.Equal(t, models.Batch2, order.Batch())

	order.CreatedAt = at(7, 15)
	assert.Equal(t, models.Batch1, order.Batch())
}
