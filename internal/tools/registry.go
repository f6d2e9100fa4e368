package tools

import (
	"sort"

	"github.com/cloudwego/eino/schema"
)

// The closed tool set. Adding or removing a tool means touching these
// constants, the registry below and the dispatcher switch together.
const (
	ToolQueryDB        = "query_db"
	ToolGetDBSchema    = "get_db_schema"
	ToolGetPatientData = "get_patient_data"
	ToolCompareDates   = "compare_dates"
)

const (
	queryDBDesc = "Execute a read-only SQL query against the database and return the result as a string. " +
		"Supports SELECT queries and CTEs (Common Table Expressions). " +
		"The database is opened in read-only mode to prevent write operations."
	getDBSchemaDesc = "Return the schema of all tables in the database, including column names, types, and constraints."
	getPatientDataDesc = "Retrieve data from specified tables for a patient, optionally filtered by date range. " +
		"Available tables: demographics, medications, labs, lab_tests_only, imaging, procedures, conditions, " +
		"problem_list, encounters, allergies, immunizations, careplans, devices."
	compareDatesDesc = "Compare two dates and return information about their relationship (which is earlier, if equal, difference in days)."

	dbPathDesc     = "Path to the SQLite database file (optional, defaults to the configured database)."
	dateFormatDesc = "Go reference layout of the input dates (optional, defaults to 2006-01-02)."
)

var dbPathParam = &schema.ParameterInfo{
	Type: schema.String,
	Desc: dbPathDesc,
}

var toolParams = map[string]map[string]*schema.ParameterInfo{
	ToolQueryDB: {
		"query": {
			Type:     schema.String,
			Desc:     "SQL SELECT query to execute.",
			Required: true,
		},
		"db_path": dbPathParam,
	},
	ToolGetDBSchema: {
		"db_path": dbPathParam,
	},
	ToolGetPatientData: {
		"patient_id": {
			Type:     schema.String,
			Desc:     "Unique patient identifier.",
			Required: true,
		},
		"tables": {
			Type: schema.Array,
			Desc: "List of table names to retrieve data from.",
			ElemInfo: &schema.ParameterInfo{
				Type: schema.String,
				Enum: patientTableNames,
			},
			Required: true,
		},
		"start_date": {
			Type: schema.String,
			Desc: "Start date for filtering (YYYY-MM-DD). Must be provided with end_date.",
		},
		"end_date": {
			Type: schema.String,
			Desc: "End date for filtering (YYYY-MM-DD). Must be provided with start_date.",
		},
		"db_path": dbPathParam,
	},
	ToolCompareDates: {
		"date1": {
			Type:     schema.String,
			Desc:     "First date to compare.",
			Required: true,
		},
		"date2": {
			Type:     schema.String,
			Desc:     "Second date to compare.",
			Required: true,
		},
		"date_format": {
			Type: schema.String,
			Desc: dateFormatDesc,
		},
	},
}

var toolDescs = map[string]string{
	ToolQueryDB:        queryDBDesc,
	ToolGetDBSchema:    getDBSchemaDesc,
	ToolGetPatientData: getPatientDataDesc,
	ToolCompareDates:   compareDatesDesc,
}

// toolNames fixes the order tools are advertised in.
var toolNames = []string{ToolQueryDB, ToolGetDBSchema, ToolGetPatientData, ToolCompareDates}

// Specs returns the full tool registry in the model-binding form. The registry
// is fixed at process start and never mutated.
func Specs() []*schema.ToolInfo {
	specs := make([]*schema.ToolInfo, 0, len(toolNames))
	for _, name := range toolNames {
		specs = append(specs, &schema.ToolInfo{
			Name:        name,
			Desc:        toolDescs[name],
			ParamsOneOf: schema.NewParamsOneOfByParams(toolParams[name]),
		})
	}
	return specs
}

// ToolSpec is the wire description of one registry entry, used by the HTTP
// embedding surface.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// SpecList returns the registry as plain JSON-schema descriptions.
func SpecList() []ToolSpec {
	specs := make([]ToolSpec, 0, len(toolNames))
	for _, name := range toolNames {
		specs = append(specs, ToolSpec{
			Name:        name,
			Description: toolDescs[name],
			Parameters:  paramsJSONSchema(toolParams[name]),
		})
	}
	return specs
}

func paramsJSONSchema(params map[string]*schema.ParameterInfo) map[string]any {
	properties := make(map[string]any, len(params))
	var required []string
	for _, name := range sortedParamNames(params) {
		info := params[name]
		properties[name] = paramJSONSchema(info)
		if info.Required {
			required = append(required, name)
		}
	}
	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func paramJSONSchema(info *schema.ParameterInfo) map[string]any {
	out := map[string]any{
		"type": string(info.Type),
	}
	if info.Desc != "" {
		out["description"] = info.Desc
	}
	if len(info.Enum) > 0 {
		out["enum"] = info.Enum
	}
	if info.ElemInfo != nil {
		out["items"] = paramJSONSchema(info.ElemInfo)
	}
	return out
}

func sortedParamNames(params map[string]*schema.ParameterInfo) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
