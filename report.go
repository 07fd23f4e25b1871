package surge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Report statuses as reported by the API.
const (
	ReportStatusCreating   = "CREATING"
	ReportStatusReady      = "READY"
	ReportStatusInProgress = "IN_PROGRESS"
	ReportStatusRetrying   = "RETRYING"
	ReportStatusCompleted  = "COMPLETED"
	ReportStatusError      = "ERROR"
)

// Report export variants.
const (
	ReportTypeExportJSON           = "export_json"
	ReportTypeExportJSONAggregated = "export_json_aggregated"
	ReportTypeExportCSV            = "export_csv"
	ReportTypeExportCSVAggregated  = "export_csv_aggregated"
	ReportTypeExportCSVFlattened   = "export_csv_flattened"
)

// ReportStatus is a transient job-status projection; which fields are set
// depends on the status.
type ReportStatus struct {
	Status string
	// JobID is set while the report is being generated.
	JobID string
	// URL is a time-limited presigned link, set once the report is ready.
	URL              string
	ExpiresInSeconds int
	// ErrorType describes a terminal failure.
	ErrorType string
}

func parseReportStatus(response any) (*ReportStatus, error) {
	rec, ok := asRecord(response)
	if !ok {
		return nil, NewRequestError("Expected a report status record in the response.", nil)
	}
	return &ReportStatus{
		Status:           recordString(rec, "status"),
		JobID:            recordString(rec, "job_id"),
		URL:              recordString(rec, "url"),
		ExpiresInSeconds: recordInt(rec, "expires_in_seconds"),
		ErrorType:        recordString(rec, "type"),
	}, nil
}

// RequestReport requests creation of a report. Report generation is
// asynchronous and idempotent: when a current report already exists the
// status is READY with a presigned URL, otherwise CREATING with a job id
// to poll via ReportJobStatus.
func (c *Client) RequestReport(ctx context.Context, projectID, reportType string, opts ...CallOption) (*ReportStatus, error) {
	if projectID == "" {
		return nil, NewMissingIDError("project_id")
	}
	response, err := c.post(ctx, fmt.Sprintf("%s/%s/report", projectsEndpoint, projectID), Params{"report_type": reportType}, opts)
	if err != nil {
		return nil, err
	}
	return parseReportStatus(response)
}

// ReportJobStatus polls a report generation job. The status is one of
// IN_PROGRESS, RETRYING, COMPLETED or ERROR.
func (c *Client) ReportJobStatus(ctx context.Context, projectID, jobID string, opts ...CallOption) (*ReportStatus, error) {
	if projectID == "" {
		return nil, NewMissingIDError("project_id")
	}
	if jobID == "" {
		return nil, NewMissingIDError("job_id")
	}
	response, err := c.get(ctx, fmt.Sprintf("%s/%s/report_status", projectsEndpoint, projectID), Params{"job_id": jobID}, opts)
	if err != nil {
		return nil, err
	}
	return parseReportStatus(response)
}

// SaveReport drives report generation to a terminal state, downloads the
// result, writes it to destPath (or a default-named file when destPath is
// empty) and returns the decompressed bytes. The whole operation is
// bounded by the given time budget; exhausting it without the report
// becoming ready fails with ReportTimeoutError. Any server-reported
// status other than CREATING or READY fails immediately.
func (c *Client) SaveReport(ctx context.Context, projectID, reportType, destPath string, timeout time.Duration, opts ...CallOption) ([]byte, error) {
	data, err := c.reportBytes(ctx, projectID, reportType, timeout, opts)
	if err != nil {
		return nil, err
	}
	if destPath == "" {
		destPath = defaultReportPath(projectID, reportType)
	}
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return nil, NewRequestError("Failed to write report file.", err)
	}
	return data, nil
}

// DownloadReportJSON fetches the JSON export of a project's report and
// returns the parsed value instead of raw bytes.
func (c *Client) DownloadReportJSON(ctx context.Context, projectID string, timeout time.Duration, opts ...CallOption) (any, error) {
	data, err := c.reportBytes(ctx, projectID, ReportTypeExportJSON, timeout, opts)
	if err != nil {
		return nil, err
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, NewRequestError("Report content is not valid JSON.", err)
	}
	return parsed, nil
}

// reportBytes polls request-creation until READY, then fetches and
// decompresses the report.
func (c *Client) reportBytes(ctx context.Context, projectID, reportType string, timeout time.Duration, opts []CallOption) ([]byte, error) {
	deadline := c.now().Add(timeout)
	for {
		status, err := c.RequestReport(ctx, projectID, reportType, opts...)
		if err != nil {
			return nil, err
		}
		switch status.Status {
		case ReportStatusReady:
			return c.fetchReport(ctx, status.URL)
		case ReportStatusCreating:
			if !c.now().Before(deadline) {
				return nil, NewReportTimeoutError(
					fmt.Sprintf("Report for project %s was not ready within the time budget.", projectID),
					timeout.String(),
				)
			}
			if err := c.sleep(ctx, c.pollInterval); err != nil {
				return nil, NewRequestError("Report polling interrupted.", err)
			}
		default:
			return nil, NewRequestError(fmt.Sprintf("Report generation failed with status %q.", status.Status), nil)
		}
	}
}

// fetchReport downloads a presigned report URL and gunzips the payload.
// The URL is already signed, so no auth header is attached.
func (c *Client) fetchReport(ctx context.Context, url string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewRequestError("Failed to build report download request.", err)
	}
	resp, err := c.requestor.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, NewRequestError("Report download failed.", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewRequestError(fmt.Sprintf("Report download failed: %s.\nResponse body: %s", resp.Status, string(body)), nil)
	}
	reader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, NewRequestError("Report content is not valid gzip.", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, NewRequestError("Failed to decompress report content.", err)
	}
	return data, nil
}

func defaultReportPath(projectID, reportType string) string {
	ext := "json"
	if strings.Contains(reportType, "csv") {
		ext = "csv"
	}
	return fmt.Sprintf("surge_report_%s.%s", projectID, ext)
}
