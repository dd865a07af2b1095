package employee

// Employee is the flattened directory record the dashboard consumes. The
// attendance pipeline itself only needs EmployeeID.
type Employee struct {
	ID          string `json:"id"`
	ZohoID      string `json:"zohoId,omitempty"`
	EmployeeID  string `json:"employeeId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Designation string `json:"designation,omitempty"`
	Department  string `json:"department,omitempty"`
	ReportingTo string `json:"reportingTo,omitempty"`
	Location    string `json:"location,omitempty"`
	JoiningDate string `json:"joiningDate,omitempty"`
	Status      string `json:"status"`
	Photo       string `json:"photo,omitempty"`
}
