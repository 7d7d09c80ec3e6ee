package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/domain/attendance"
	"github.com/hrsuite/hr-backend-go/internal/domain/employee"
	"github.com/hrsuite/hr-backend-go/internal/domain/notification"
)

type AttendanceJobs struct {
	attendanceRepo  attendance.AttendanceRepository
	employeeRepo    employee.EmployeeRepository
	notificationSvc notification.Service
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	notificationSvc notification.Service,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:  attendanceRepo,
		employeeRepo:    employeeRepo,
		notificationSvc: notificationSvc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills an ABSENT record for every active
// employee who never checked in on the previous UTC day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	yesterday := attendance.DayOf(time.Now().UTC().AddDate(0, 0, -1))
	return j.markAbsentFor(ctx, yesterday)
}

func (j *AttendanceJobs) markAbsentFor(ctx context.Context, yesterday time.Time) error {
	employees, err := j.employeeRepo.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active employees: %w", err)
	}

	var absences []attendance.Attendance
	absentByManager := make(map[string]int)

	for _, emp := range employees {
		// Skip employees hired after the target day
		if attendance.DayOf(emp.HireDate).After(yesterday) {
			continue
		}

		record, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to check attendance record",
				"employee_id", emp.ID, "date", yesterday.Format("2006-01-02"), "error", err)
			continue
		}
		if record != nil {
			continue
		}

		zero := 0.0
		absences = append(absences, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       yesterday,
			Status:     attendance.StatusAbsent,
			TotalHours: &zero,
		})

		if emp.ManagerID != nil {
			absentByManager[*emp.ManagerID]++
		}
	}

	if len(absences) == 0 {
		slog.Info("Cron: No absences to mark")
		return nil
	}

	inserted, err := j.attendanceRepo.BulkCreateAbsences(ctx, absences)
	if err != nil {
		return fmt.Errorf("failed to bulk create absences: %w", err)
	}

	// Notify each manager once with the count of absent direct reports
	if j.notificationSvc != nil {
		for managerEmployeeID, count := range absentByManager {
			manager, err := j.employeeRepo.GetByID(ctx, managerEmployeeID)
			if err != nil {
				continue
			}
			_ = j.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
				RecipientID: manager.UserID,
				Type:        notification.TypeSystem,
				Title:       "Absences détectées",
				Message:     fmt.Sprintf("%d membre(s) de votre équipe n'ont pas pointé le %s", count, yesterday.Format("2006-01-02")),
			})
		}
	}

	slog.Info("Cron: Marked absent employees", "count", inserted, "date", yesterday.Format("2006-01-02"))
	return nil
}
