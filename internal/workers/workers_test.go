package workers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/meddesk-dev/meddesk/internal/models"
	"github.com/meddesk-dev/meddesk/internal/tasks"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

func createTicket(t *testing.T, db *gorm.DB, status string) *models.Ticket {
	t.Helper()

	user := &models.User{Email: status + "@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)

	ticket := &models.Ticket{
		UserID:  user.ID,
		Subject: "Order question",
		Body:    "Where is my order?",
		Status:  status,
	}
	require.NoError(t, db.Create(ticket).Error)

	return ticket
}

func TestHandleTicketAutoClose_ClosesResolvedTicket(t *testing.T) {
	db := openTestDB(t)
	ticket := createTicket(t, db, models.TicketStatusResolved)

	task, err := tasks.NewTicketAutoCloseTask(ticket.ID)
	require.NoError(t, err)
	require.NoError(t, HandleTicketAutoClose(context.Background(), task, db, zerolog.Nop()))

	var got models.Ticket
	require.NoError(t, db.First(&got, "id = ?", ticket.ID).Error)
	require.Equal(t, models.TicketStatusClosed, got.Status)
}

func TestHandleTicketAutoClose_SkipsReopenedTicket(t *testing.T) {
	db := openTestDB(t)
	ticket := createTicket(t, db, models.TicketStatusOpen)

	task, err := tasks.NewTicketAutoCloseTask(ticket.ID)
	require.NoError(t, err)
	require.NoError(t, HandleTicketAutoClose(context.Background(), task, db, zerolog.Nop()))

	var got models.Ticket
	require.NoError(t, db.First(&got, "id = ?", ticket.ID).Error)
	require.Equal(t, models.TicketStatusOpen, got.Status)
}

func TestHandleTicketAutoClose_DeletedTicketIsNoop(t *testing.T) {
	db := openTestDB(t)

	task, err := tasks.NewTicketAutoCloseTask("01GONE")
	require.NoError(t, err)
	require.NoError(t, HandleTicketAutoClose(context.Background(), task, db, zerolog.Nop()))
}

func TestHandleMeetSweepExpired(t *testing.T) {
	db := openTestDB(t)

	user := &models.User{Email: "meets@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	doctor := &models.Doctor{Name: "Dr. Example", Specialty: "Cardiology"}
	require.NoError(t, db.Create(doctor).Error)

	now := time.Now().UTC()
	old := &models.Meet{UserID: user.ID, DoctorID: doctor.ID,
		MeetURL: "https://meet.example/old", ScheduledAt: now.Add(-48 * time.Hour)}
	recent := &models.Meet{UserID: user.ID, DoctorID: doctor.ID,
		MeetURL: "https://meet.example/recent", ScheduledAt: now.Add(-1 * time.Hour)}
	upcoming := &models.Meet{UserID: user.ID, DoctorID: doctor.ID,
		MeetURL: "https://meet.example/upcoming", ScheduledAt: now.Add(24 * time.Hour)}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(recent).Error)
	require.NoError(t, db.Create(upcoming).Error)

	task := tasks.NewMeetSweepExpiredTask()
	require.NoError(t, HandleMeetSweepExpired(context.Background(), task, db, zerolog.Nop()))

	var remaining []models.Meet
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, meet := range remaining {
		require.NotEqual(t, old.ID, meet.ID)
	}
}

func TestCalculateNextCleanupTime(t *testing.T) {
	from := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

	next := calculateNextCleanupTime("0 3 * * *", from)
	require.NotNil(t, next)
	require.Equal(t, time.Date(2026, 3, 11, 3, 0, 0, 0, time.UTC), *next)

	// Later the same day when the schedule has not fired yet
	next = calculateNextCleanupTime("0 15 * * *", from)
	require.NotNil(t, next)
	require.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), *next)

	require.Nil(t, calculateNextCleanupTime("", from))
	require.Nil(t, calculateNextCleanupTime("not a cron", from))
}
