package repository_test

import (
	"context"
	"testing"
	"time"

	"ganttboard/internal/model"
	"ganttboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func taskRows(tasks ...model.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "segment", "start_date", "end_date",
		"progress", "status", "description", "assignee", "is_overdue",
	})
	for _, task := range tasks {
		rows.AddRow(task.ID, task.Name, task.Segment, task.StartDate, task.EndDate,
			task.Progress, task.Status, task.Description, task.Assignee, task.IsOverdue)
	}
	return rows
}

func TestTaskRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	now := time.Now()
	task := &model.Task{
		Name:      "Design Phase",
		Segment:   "General",
		StartDate: now,
		EndDate:   now.Add(5 * 24 * time.Hour),
		Progress:  30,
		Status:    model.StatusInProgress,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Create(context.Background(), task)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, uint(1), task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	now := time.Now()
	stored := model.Task{
		ID:        7,
		Name:      "Backend Setup",
		Segment:   "General",
		StartDate: now,
		EndDate:   now.Add(24 * time.Hour),
		Status:    model.StatusTodo,
	}

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .*`).
		WillReturnRows(taskRows(stored))

	// Act
	task, err := taskRepo.GetByID(context.Background(), 7)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, uint(7), task.ID)
	assert.Equal(t, "Backend Setup", task.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	task, err := taskRepo.GetByID(context.Background(), 42)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_List_OrdersByStartDate(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	now := time.Now()
	first := model.Task{ID: 1, Name: "Kickoff", Segment: "General", StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour), Status: model.StatusDone}
	second := model.Task{ID: 2, Name: "Design Phase", Segment: "General", StartDate: now, EndDate: now.Add(5 * 24 * time.Hour), Status: model.StatusInProgress}

	mock.ExpectQuery(`SELECT .* FROM "tasks" ORDER BY start_date asc`).
		WillReturnRows(taskRows(first, second))

	// Act
	tasks, err := taskRepo.List(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "Kickoff", tasks[0].Name)
	assert.Equal(t, "Design Phase", tasks[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	task, err := taskRepo.Update(context.Background(), 42, map[string]any{"progress": 80})

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_MergesColumns(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	now := time.Now()
	before := model.Task{ID: 3, Name: "Design Phase", Segment: "General", StartDate: now, EndDate: now.Add(24 * time.Hour), Progress: 30, Status: model.StatusInProgress}
	after := before
	after.Progress = 80

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .*`).
		WillReturnRows(taskRows(before))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET "progress"=.*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .*`).
		WillReturnRows(taskRows(after))

	// Act
	task, err := taskRepo.Update(context.Background(), 3, map[string]any{"progress": 80})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 80, task.Progress)
	assert.Equal(t, "Design Phase", task.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_MissingIDIsNoError(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), 42)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_ListOverdue_FiltersByDeadlineAndStatus(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	now := time.Now()
	overdue := model.Task{ID: 4, Name: "Legacy Migration", Segment: "General", StartDate: now.Add(-10 * 24 * time.Hour), EndDate: now.Add(-2 * 24 * time.Hour), Progress: 50, Status: model.StatusInProgress}

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE end_date < .* AND status <> .*`).
		WithArgs(sqlmock.AnyArg(), model.StatusDone).
		WillReturnRows(taskRows(overdue))

	// Act
	tasks, err := taskRepo.ListOverdue(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "Legacy Migration", tasks[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
