package reporter

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/aleister1102/webwatch/internal/common"
	"github.com/aleister1102/webwatch/internal/models"
	"github.com/rs/zerolog"
)

// monitoringReport is the serialized shape of the report document.
type monitoringReport struct {
	XMLName            xml.Name     `xml:"MonitoringReport"`
	Status             string       `xml:"Status"`
	TimestampGenerated string       `xml:"TimestampGenerated"`
	ChangeItems        []changeItem `xml:"ChangeItem"`
}

// changeItem carries the five fields of one ChangeEvent in fixed order.
type changeItem struct {
	Name        string `xml:"Name"`
	URL         string `xml:"URL"`
	Timestamp   string `xml:"Timestamp"`
	Status      string `xml:"Status"`
	HashDetails string `xml:"HashDetails"`
}

// XMLReporter serializes the events of a run into the XML report document.
type XMLReporter struct {
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewXMLReporter creates a new XMLReporter.
func NewXMLReporter(logger zerolog.Logger) *XMLReporter {
	return &XMLReporter{
		logger:      logger.With().Str("component", "XMLReporter").Logger(),
		fileManager: common.NewFileManager(logger),
	}
}

// Generate builds the report document for the given events and writes it to
// outputPath, overwriting any previous report. Event order is preserved. A
// write failure is returned to the caller and is fatal for the run.
func (xr *XMLReporter) Generate(events []models.ChangeEvent, outputPath string) error {
	report := monitoringReport{
		Status:             summaryStatus(len(events)),
		TimestampGenerated: time.Now().Format(time.RFC3339),
		ChangeItems:        make([]changeItem, 0, len(events)),
	}

	for _, event := range events {
		report.ChangeItems = append(report.ChangeItems, changeItem{
			Name:        event.Name,
			URL:         event.URL,
			Timestamp:   event.Timestamp,
			Status:      event.Status,
			HashDetails: event.HashDetails,
		})
	}

	data, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return common.WrapError(err, "failed to marshal monitoring report")
	}

	document := append([]byte(xml.Header), data...)
	document = append(document, '\n')

	if err := xr.fileManager.WriteFile(outputPath, document, 0644); err != nil {
		return common.WrapError(err, "failed to write monitoring report")
	}

	xr.logger.Info().Str("path", outputPath).Int("events", len(events)).Msg("Report written")
	return nil
}

// summaryStatus is the root status line summarizing the run.
func summaryStatus(eventCount int) string {
	if eventCount > 0 {
		return fmt.Sprintf("%d Change(s) or Initial Check(s) Detected.", eventCount)
	}
	return "No changes detected since the last run."
}
