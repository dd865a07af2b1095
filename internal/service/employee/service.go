package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/employee"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/cache"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/zoho"
	"golang.org/x/sync/singleflight"
)

type EmployeeServiceImpl struct {
	client       *zoho.Client
	store        *cache.Store
	departmentID string
	directoryTTL time.Duration
	group        singleflight.Group
}

func NewEmployeeService(client *zoho.Client, store *cache.Store, departmentID string, directoryTTL time.Duration) employee.Service {
	return &EmployeeServiceImpl{
		client:       client,
		store:        store,
		departmentID: departmentID,
		directoryTTL: directoryTTL,
	}
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	if list, ok := s.store.Directory(); ok {
		return list, nil
	}

	v, err, _ := s.group.Do("directory", func() (interface{}, error) {
		records, err := s.client.GetDepartmentEmployees(ctx, s.departmentID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", employee.ErrDirectoryUnavailable, err)
		}

		list := flatten(records)
		s.store.SetDirectory(list, s.directoryTTL)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]employee.Employee), nil
}

// IDs implements employee.Service.
func (s *EmployeeServiceImpl) IDs(ctx context.Context) ([]string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list))
	for _, emp := range list {
		if emp.EmployeeID != "" {
			ids = append(ids, emp.EmployeeID)
		}
	}
	return ids, nil
}

// flatten maps directory records to the domain shape, dropping employees
// who have left.
func flatten(records []zoho.DirectoryRecord) []employee.Employee {
	out := make([]employee.Employee, 0, len(records))
	for _, rec := range records {
		if inactiveStatus(rec.Status) {
			continue
		}

		status := rec.Status
		if status == "" {
			status = "Active"
		}

		out = append(out, employee.Employee{
			ID:          rec.RecordID,
			ZohoID:      rec.ZohoID,
			EmployeeID:  rec.EmployeeID,
			FirstName:   rec.FirstName,
			LastName:    rec.LastName,
			FullName:    strings.TrimSpace(rec.FirstName + " " + rec.LastName),
			Email:       rec.Email,
			Mobile:      rec.Mobile,
			Designation: rec.Designation,
			Department:  rec.Department,
			ReportingTo: rec.ReportingTo,
			Location:    rec.Location,
			JoiningDate: rec.JoiningDate,
			Status:      status,
			Photo:       rec.Photo,
		})
	}
	return out
}

func inactiveStatus(status string) bool {
	switch strings.ToLower(status) {
	case "terminated", "inactive", "resigned", "abscond":
		return true
	default:
		return false
	}
}
