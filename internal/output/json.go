package output

import (
	"encoding/json"
)

// JSONFormatter renders the populated report section as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	var v any = report
	switch {
	case report.Returns != nil:
		v = report.Returns
	case report.Summary != nil:
		v = report.Summary
	case report.HasSplit():
		v = struct {
			Valid   []Row `json:"valid"`
			Invalid []Row `json:"invalid"`
		}{report.Valid, report.Invalid}
	default:
		v = struct {
			Transactions []Row `json:"transactions"`
		}{report.Transactions}
	}

	if j.Pretty {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return json.Marshal(v)
}
