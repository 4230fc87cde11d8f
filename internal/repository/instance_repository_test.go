package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andestrack/field-service-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (InstanceRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(t, err)

	return NewInstanceRepository(db), mock
}

// The orphan counters gate on recorded work: a completed status or at least
// one field response. These tests pin the generated SQL so the EXISTS
// correlation against field_responses does not silently regress.
func TestCountOrphanedByDayService(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "task_instances" WHERE work_order_day_service_id = \$1 AND \(status = \$2 OR EXISTS \(SELECT 1 FROM "field_responses" WHERE field_responses\.task_instance_id = task_instances\.id\)\)`).
		WithArgs(uint64(7), string(models.InstanceStatusCompleted)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountOrphanedByDayService(7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOrphanedByDayTaskTemplate(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "task_instances" WHERE work_order_day_task_template_id = \$1 AND \(status = \$2 OR EXISTS \(SELECT 1 FROM "field_responses" WHERE field_responses\.task_instance_id = task_instances\.id\)\)`).
		WithArgs(uint64(3), string(models.InstanceStatusCompleted)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.CountOrphanedByDayTaskTemplate(3)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
