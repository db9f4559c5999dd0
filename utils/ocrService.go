package utils

import (
	"encoding/json"
	"fmt"
	"paperscan/config"

	"github.com/go-resty/resty/v2"
)

// OCRJobStatus is the polled state of an OCR conversion job
type OCRJobStatus struct {
	Status string // pending, completed, error
	Latex  string // populated when Status is completed
	Error  string
}

// SubmitPDFToOCR submits a base64-encoded PDF to the math OCR service and
// returns the job ID for polling.
func SubmitPDFToOCR(pdfBase64 string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("app_id", config.AppConfig.OCRAppID).
		SetHeader("app_key", config.AppConfig.OCRAppKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"src":     "data:application/pdf;base64," + pdfBase64,
			"formats": []string{"text"},
		}).
		Post(config.AppConfig.OCRApiURL + "/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to submit PDF to OCR: %v", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("OCR API error: %s", resp.String())
	}

	var submitResp struct {
		PDFID string `json:"pdf_id"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &submitResp); err != nil {
		return "", fmt.Errorf("invalid OCR submit response: %v", err)
	}
	if submitResp.PDFID == "" {
		return "", fmt.Errorf("OCR submit rejected: %s", submitResp.Error)
	}

	return submitResp.PDFID, nil
}

// PollOCRJob fetches the current state of an OCR job. When the conversion is
// done it also fetches the LaTeX text.
func PollOCRJob(jobID string) (*OCRJobStatus, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("app_id", config.AppConfig.OCRAppID).
		SetHeader("app_key", config.AppConfig.OCRAppKey).
		Get(config.AppConfig.OCRApiURL + "/pdf/" + jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to poll OCR job %s: %v", jobID, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("OCR API error: %s", resp.String())
	}

	var pollResp struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &pollResp); err != nil {
		return nil, fmt.Errorf("invalid OCR poll response: %v", err)
	}

	status := &OCRJobStatus{Status: pollResp.Status, Error: pollResp.Error}
	if pollResp.Status != "completed" {
		return status, nil
	}

	// Conversion finished, fetch the LaTeX-flavoured markdown output
	textResp, err := client.R().
		SetHeader("app_id", config.AppConfig.OCRAppID).
		SetHeader("app_key", config.AppConfig.OCRAppKey).
		Get(config.AppConfig.OCRApiURL + "/pdf/" + jobID + ".mmd")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch OCR text for job %s: %v", jobID, err)
	}
	if textResp.StatusCode() != 200 {
		return nil, fmt.Errorf("OCR API error fetching text: %s", textResp.String())
	}

	status.Latex = string(textResp.Body())
	return status, nil
}
