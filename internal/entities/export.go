package entities

const (
	ExportRevenue    = "revenue"
	ExportUsage      = "usage"
	ExportUsers      = "users"
	ExportCourtUsage = "court-usage"
)

type ExportFile struct {
	Kind        string
	Filename    string
	ContentType string
	Body        []byte
}
