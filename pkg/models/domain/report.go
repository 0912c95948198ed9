package domain

// Report represents a complete analysis report rendered by the terminal reporters
type Report struct {
	Title    string
	Period   TimePeriod
	Sections []ReportSection
	Total    float64
}

// TimePeriod represents the month range covered by the report
type TimePeriod struct {
	Start  string
	End    string
	Months int
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title    string
	Summary  map[string]interface{}
	Details  []ReportDetail
	Metadata map[string]interface{}
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
