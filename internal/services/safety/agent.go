package safety

import (
	"context"
	"fmt"
	"strings"

	"github.com/zelig/zelig-backend/internal/services/search"
)

// Risk levels reported to clients.
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
	RiskUnknown  = "Unknown"
)

const (
	summaryLow      = "No immediate red flags found in recent news."
	summaryModerate = "Some cautionary reports found. Be aware of your surroundings."
	summaryHigh     = "Multiple recent safety mentions found. Exercise high caution."
	summaryUnknown  = "Could not fetch live news."

	// more issues than this escalates to High
	highIssueThreshold = 2
)

// Report is the safety assessment for one location.
type Report struct {
	Location  string   `json:"location"`
	RiskLevel string   `json:"risk_level"`
	Summary   string   `json:"summary"`
	Sources   []string `json:"sources"`
	Issues    []string `json:"issues"`
	Error     string   `json:"error,omitempty"`
}

// Logger defines the logging interface used by the agent
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Agent classifies recent news about a location by keyword presence.
type Agent struct {
	config   *Config
	searcher search.Searcher
	logger   Logger
	keywords []string
}

func NewAgent(config *Config, searcher search.Searcher, logger Logger) (*Agent, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid safety config: %w", err)
	}
	if searcher == nil {
		return nil, fmt.Errorf("searcher is required")
	}

	keywords := make([]string, 0, len(config.DangerKeywords))
	for _, k := range config.DangerKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	return &Agent{config: config, searcher: searcher, logger: logger, keywords: keywords}, nil
}

// Query returns the search query issued for location.
func (a *Agent) Query(location string) string {
	return fmt.Sprintf(a.config.QueryTemplate, location)
}

// Analyze searches recent news for location and grades the risk. Search
// failures are reported inside the Report, never as an error.
func (a *Agent) Analyze(ctx context.Context, location string) Report {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	report := Report{
		Location: location,
		Sources:  []string{},
		Issues:   []string{},
	}

	results, err := a.searcher.Search(ctx, a.Query(location), a.config.MaxResults)
	if err != nil {
		a.logger.Warn("safety search failed", "location", location, "error", err)
		report.RiskLevel = RiskUnknown
		report.Summary = summaryUnknown
		report.Error = err.Error()
		return report
	}

	for _, r := range results {
		report.Sources = append(report.Sources, r.URL)
		report.Issues = append(report.Issues, a.issues(r.Body)...)
	}

	switch {
	case len(report.Issues) > highIssueThreshold:
		report.RiskLevel = RiskHigh
		report.Summary = summaryHigh
	case len(report.Issues) > 0:
		report.RiskLevel = RiskModerate
		report.Summary = summaryModerate
	default:
		report.RiskLevel = RiskLow
		report.Summary = summaryLow
	}

	a.logger.Info("safety analysis complete", "location", location, "risk_level", report.RiskLevel, "issues", len(report.Issues))
	return report
}

// issues lists one entry per keyword found in body, in keyword order.
func (a *Agent) issues(body string) []string {
	body = strings.ToLower(body)
	var out []string
	for _, word := range a.keywords {
		if strings.Contains(body, word) {
			out = append(out, fmt.Sprintf("Report mentioning '%s'", word))
		}
	}
	return out
}
