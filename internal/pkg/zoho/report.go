package zoho

import (
	"encoding/json"
	"regexp"
)

// The attendance report endpoint answers in one of three shapes:
//
//	ShapeFlat     — {"29-04-2025": {...}, "30-04-2025": {...}}
//	ShapeEnvelope — {"response": {"result": {"29-04-2025": {...}}}}
//	ShapeEmpty    — empty body, empty object, or nothing recognizable
//
// ParseReport detects the shape and flattens it to date-keyed DayRecords so
// the rest of the pipeline never sees the difference.
type ReportShape int

const (
	ShapeEmpty ReportShape = iota
	ShapeFlat
	ShapeEnvelope
)

// DayRecord is one upstream day as received. FirstIn and LastOut are
// free-text and may be "-" for an absent field; Raw keeps the received
// bytes for audit.
type DayRecord struct {
	FirstIn        string `json:"FirstIn"`
	LastOut        string `json:"LastOut"`
	Status         string `json:"Status"`
	ShiftName      string `json:"ShiftName"`
	ShiftStartTime string `json:"ShiftStartTime"`
	ShiftEndTime   string `json:"ShiftEndTime"`
	Location       string `json:"FirstIn_Location"`

	Raw json.RawMessage `json:"-"`
}

// Date keys arrive as either 29-04-2025 or 2025-04-29.
var dateKeyPattern = regexp.MustCompile(`^(\d{2}-\d{2}-\d{4}|\d{4}-\d{2}-\d{2})$`)

type reportEnvelope struct {
	Response *struct {
		Result map[string]json.RawMessage `json:"result"`
	} `json:"response"`
}

// ParseReport flattens an attendance report body into date-keyed records.
// A nil or empty map with ShapeEmpty means the caller should synthesize a
// default record; an error means the body was not JSON at all.
func ParseReport(body []byte) (map[string]DayRecord, ReportShape, error) {
	if len(body) == 0 {
		return nil, ShapeEmpty, nil
	}

	// Envelope first: a flat parse would otherwise swallow the "response"
	// key as if it were a date.
	var env reportEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Response != nil {
		if len(env.Response.Result) == 0 {
			return nil, ShapeEmpty, nil
		}
		return decodeDateMap(env.Response.Result), ShapeEnvelope, nil
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, ShapeEmpty, err
	}
	records := decodeDateMap(flat)
	if len(records) == 0 {
		return nil, ShapeEmpty, nil
	}
	return records, ShapeFlat, nil
}

func decodeDateMap(m map[string]json.RawMessage) map[string]DayRecord {
	records := make(map[string]DayRecord, len(m))
	for key, raw := range m {
		if !dateKeyPattern.MatchString(key) {
			continue
		}
		records[key] = decodeDay(raw)
	}
	return records
}

// decodeDay tolerates the per-day record being a single object or a
// one-element array. Anything else degrades to an empty record with only
// Raw retained, which normalization turns into an absent/default day.
func decodeDay(raw json.RawMessage) DayRecord {
	var rec DayRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		var arr []DayRecord
		if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
			rec = arr[0]
		}
	}
	rec.Raw = raw
	return rec
}

// DirectoryRecord is one employee as returned by getRelatedRecords, already
// unwrapped from the {"<recordID>": [ {...fields} ]} nesting.
type DirectoryRecord struct {
	RecordID string

	ZohoID      string `json:"Zoho_ID"`
	EmployeeID  string `json:"EmployeeID"`
	FirstName   string `json:"FirstName"`
	LastName    string `json:"LastName"`
	Email       string `json:"EmailID"`
	Mobile      string `json:"Mobile"`
	Designation string `json:"Designation"`
	Department  string `json:"Department"`
	ReportingTo string `json:"Reporting_To"`
	Location    string `json:"Work_location"`
	JoiningDate string `json:"Dateofjoining"`
	Status      string `json:"Employeestatus"`
	Photo       string `json:"Photo_downloadUrl"`
}

type directoryEnvelope struct {
	Response struct {
		Result []map[string][]DirectoryRecord `json:"result"`
	} `json:"response"`
}

// ParseDirectory unwraps the nested directory payload. Each result item is
// an object with a single record-ID key whose value is a one-element array
// of field maps.
func ParseDirectory(body []byte) ([]DirectoryRecord, error) {
	var env directoryEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	var records []DirectoryRecord
	for _, item := range env.Response.Result {
		for recordID, entries := range item {
			if len(entries) == 0 {
				continue
			}
			rec := entries[0]
			rec.RecordID = recordID
			records = append(records, rec)
		}
	}
	return records, nil
}
