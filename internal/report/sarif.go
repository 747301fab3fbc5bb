package report

import (
	"encoding/json"

	"github.com/xab-mack/authsurface/internal/model"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}
type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}
type sarifArt struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

// ToSARIF renders unguarded-write findings as a SARIF report.
func ToSARIF(findings []model.Finding) ([]byte, error) {
	var results []sarifResult
	for _, f := range findings {
		level := "warning"
		if f.Severity == model.SeverityHigh {
			level = "error"
		}
		results = append(results, sarifResult{
			RuleID:  "AUTH-UNGUARDED-WRITE",
			Level:   level,
			Message: sarifMessage{Text: f.Contract + "." + f.Function + ": " + f.Message},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: f.File},
				Region:           sarifRegion{StartLine: f.Line, EndLine: f.Line},
			}}},
		})
	}
	s := sarif{Version: "2.1.0", Runs: []sarifRun{{Tool: sarifTool{Driver: sarifDriver{Name: "authsurface"}}, Results: results}}}
	return json.MarshalIndent(s, "", "  ")
}
