package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/daksa-hr/attendance-gateway/internal/config"
	appHTTP "github.com/daksa-hr/attendance-gateway/internal/handler/http"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/cache"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/cron"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/zoho"
	attendanceService "github.com/daksa-hr/attendance-gateway/internal/service/attendance"
	employeeService "github.com/daksa-hr/attendance-gateway/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	tokens := zoho.NewTokenManager(cfg.Zoho)
	defer tokens.Close()
	client := zoho.NewClient(cfg.Zoho, tokens)
	store := cache.New(cfg.Attendance.SnapshotTTL)

	employeeSvc := employeeService.NewEmployeeService(client, store, cfg.Zoho.DepartmentID, cfg.Attendance.DirectoryTTL)
	fetcher := attendanceService.NewFetcher(client, cfg.Attendance.WindowDays)
	attendanceSvc := attendanceService.NewAttendanceService(fetcher, employeeSvc, store, cfg.Attendance.SnapshotTTL)

	// Warm the token so the first page load does not pay for the exchange.
	if _, err := tokens.Refresh(context.Background()); err != nil {
		slog.Warn("Initial token refresh failed", "error", err)
	}

	scheduler := cron.NewScheduler()
	cron.NewSnapshotJobs(attendanceSvc, cfg.Attendance.RefreshInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(cfg, attendanceHandler, employeeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
