// Package model defines the core data types shared across consentlens.
package model

import (
	"strconv"
	"strings"
)

// DefaultAppName is sent as app_name when the user does not name the app.
const DefaultAppName = "User Submitted App"

// RiskLevel categorizes how risky an agreement is.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return "Low"
	}
}

// ParseRiskLevel maps the service's risk_level string to a RiskLevel.
// Anything that is not "High" or "Medium" is Low.
func ParseRiskLevel(s string) RiskLevel {
	switch s {
	case "High":
		return RiskHigh
	case "Medium":
		return RiskMedium
	default:
		return RiskLow
	}
}

// AnalysisRequest is the body sent to the analysis service.
type AnalysisRequest struct {
	AppName     string   `json:"app_name"`
	Permissions []string `json:"permissions"`
	PolicyText  string   `json:"policy_text"`
}

// NewAnalysisRequest snapshots the given input. The permissions slice is
// copied and is never nil, so it always encodes as a JSON array.
func NewAnalysisRequest(appName string, permissions []string, policyText string) AnalysisRequest {
	perms := make([]string, len(permissions))
	copy(perms, permissions)
	return AnalysisRequest{
		AppName:     appName,
		Permissions: perms,
		PolicyText:  policyText,
	}
}

// AnalysisResult is the parsed response of the analysis service.
type AnalysisResult struct {
	App                 string   `json:"app"`
	PlainEnglishSummary string   `json:"plain_english_summary"`
	RiskLevel           string   `json:"risk_level"`
	RiskScore           float64  `json:"risk_score"`
	WhyItMatters        []string `json:"why_it_matters"`
}

// Level returns the parsed risk level.
func (r *AnalysisResult) Level() RiskLevel {
	return ParseRiskLevel(r.RiskLevel)
}

// Score formats the risk score without a trailing fraction for whole numbers.
func (r *AnalysisResult) Score() string {
	return strconv.FormatFloat(r.RiskScore, 'f', -1, 64)
}

// Reasons returns the reason codes in display form.
func (r *AnalysisResult) Reasons() []string {
	out := make([]string, 0, len(r.WhyItMatters))
	for _, code := range r.WhyItMatters {
		out = append(out, ReasonText(code))
	}
	return out
}

// ReasonText renders a reason code for humans: "data_sharing" -> "data sharing".
func ReasonText(code string) string {
	return strings.ReplaceAll(code, "_", " ")
}
