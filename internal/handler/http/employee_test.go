package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daksa-hr/attendance-gateway/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeService struct {
	list []employee.Employee
	err  error
}

func (s *stubEmployeeService) List(ctx context.Context) ([]employee.Employee, error) {
	return s.list, s.err
}

func (s *stubEmployeeService) IDs(ctx context.Context) ([]string, error) {
	return nil, s.err
}

func TestEmployeeList(t *testing.T) {
	h := NewEmployeeHandler(&stubEmployeeService{
		list: []employee.Employee{{EmployeeID: "E1", FullName: "Asha Rao"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}

func TestEmployeeListDirectoryUnavailable(t *testing.T) {
	h := NewEmployeeHandler(&stubEmployeeService{err: employee.ErrDirectoryUnavailable})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UPSTREAM_ERROR", env.Error.Code)
}
