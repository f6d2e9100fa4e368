package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Dispatcher routes model-issued tool calls to their implementations and
// normalizes every outcome, success or failure, to result text. Nothing a
// tool does can propagate past Execute.
type Dispatcher struct {
	// DBPath is the store used when a call omits db_path.
	DBPath string
	// Logf, when set, records each call for observability. It has no effect
	// on control flow.
	Logf func(format string, args ...any)
}

func NewDispatcher(dbPath string) *Dispatcher {
	return &Dispatcher{DBPath: dbPath, Logf: log.Printf}
}

type queryDBParams struct {
	Query  string `json:"query"`
	DBPath string `json:"db_path"`
}

type getDBSchemaParams struct {
	DBPath string `json:"db_path"`
}

type getPatientDataParams struct {
	PatientID string   `json:"patient_id"`
	Tables    []string `json:"tables"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	DBPath    string   `json:"db_path"`
}

type compareDatesParams struct {
	Date1      string `json:"date1"`
	Date2      string `json:"date2"`
	DateFormat string `json:"date_format"`
}

// Execute runs one named tool call with the raw argument text and returns the
// result text to feed back into the transcript.
func (d *Dispatcher) Execute(ctx context.Context, name, arguments string) string {
	result := d.execute(ctx, name, arguments)
	if d.Logf != nil {
		d.Logf("[tool call: %s] arguments: %s", name, arguments)
		d.Logf("[tool call: %s] result: %s", name, result)
	}
	return result
}

func (d *Dispatcher) execute(ctx context.Context, name, arguments string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("Error executing %s: %v", name, r)
		}
	}()

	switch name {
	case ToolQueryDB:
		var p queryDBParams
		if err := json.Unmarshal([]byte(arguments), &p); err != nil {
			return malformedArgs(name, err)
		}
		out, err := QueryDB(ctx, p.Query, d.path(p.DBPath))
		return d.normalize(name, out, err)

	case ToolGetDBSchema:
		var p getDBSchemaParams
		if err := json.Unmarshal([]byte(arguments), &p); err != nil {
			return malformedArgs(name, err)
		}
		out, err := GetDBSchema(ctx, d.path(p.DBPath))
		return d.normalize(name, out, err)

	case ToolGetPatientData:
		var p getPatientDataParams
		if err := json.Unmarshal([]byte(arguments), &p); err != nil {
			return malformedArgs(name, err)
		}
		out, err := GetPatientData(ctx, p.PatientID, p.Tables, p.StartDate, p.EndDate, d.path(p.DBPath))
		return d.normalize(name, out, err)

	case ToolCompareDates:
		var p compareDatesParams
		if err := json.Unmarshal([]byte(arguments), &p); err != nil {
			return malformedArgs(name, err)
		}
		cmp, err := CompareDates(p.Date1, p.Date2, p.DateFormat)
		if err != nil {
			return d.normalize(name, "", err)
		}
		rendered, err := json.MarshalIndent(cmp, "", "  ")
		if err != nil {
			return d.normalize(name, "", err)
		}
		return string(rendered)

	default:
		return fmt.Sprintf("Error: Function %s not found.", name)
	}
}

func (d *Dispatcher) path(override string) string {
	if override != "" {
		return override
	}
	return d.DBPath
}

// normalize converts the component outcome into transcript text: validation
// rejections render their reason, execution failures render a diagnostic
// naming the tool.
func (d *Dispatcher) normalize(name, out string, err error) string {
	if err == nil {
		return out
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("Error: %s", vErr.Reason)
	}
	return fmt.Sprintf("Error executing %s: %v", name, err)
}

func malformedArgs(name string, err error) string {
	return fmt.Sprintf("Error: invalid arguments for %s: %v", name, err)
}
