package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"paperscan/config"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Parse job statuses as reported by the document parsing service
const (
	ParseStatusSuccess = "SUCCESS"
	ParseStatusError   = "ERROR"
	ParseStatusPending = "PENDING"
)

// SubmitParseJob uploads a text corpus with parsing instructions to the
// document parsing service and returns the job ID.
func SubmitParseJob(text, instructions string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.ParserApiKey).
		SetFileReader("file", "corpus.md", strings.NewReader(text)).
		SetFormData(map[string]string{
			"parsing_instruction": instructions,
		}).
		Post(config.AppConfig.ParserApiURL + "/upload")
	if err != nil {
		return "", fmt.Errorf("failed to submit parse job: %v", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("parser API error: %s", resp.String())
	}

	var submitResp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &submitResp); err != nil {
		return "", fmt.Errorf("invalid parser submit response: %v", err)
	}
	if submitResp.ID == "" {
		return "", fmt.Errorf("parser returned no job ID: %s", resp.String())
	}

	return submitResp.ID, nil
}

// PollParseJob returns the job status: SUCCESS, ERROR or PENDING
func PollParseJob(jobID string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.ParserApiKey).
		Get(config.AppConfig.ParserApiURL + "/job/" + jobID)
	if err != nil {
		return "", fmt.Errorf("failed to poll parse job %s: %v", jobID, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("parser API error: %s", resp.String())
	}

	var pollResp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body(), &pollResp); err != nil {
		return "", fmt.Errorf("invalid parser poll response: %v", err)
	}

	return strings.ToUpper(pollResp.Status), nil
}

// FetchParseResult downloads the raw text result of a finished parse job
func FetchParseResult(jobID string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.ParserApiKey).
		Get(config.AppConfig.ParserApiURL + "/job/" + jobID + "/result/markdown")
	if err != nil {
		return "", fmt.Errorf("failed to fetch parse result %s: %v", jobID, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("parser API error: %s", resp.String())
	}

	var resultResp struct {
		Markdown string `json:"markdown"`
	}
	if err := json.Unmarshal(resp.Body(), &resultResp); err != nil {
		// Some deployments return the raw text body directly
		return string(resp.Body()), nil
	}

	return resultResp.Markdown, nil
}

// WaitForParseResult polls the job at a fixed interval up to the configured
// attempt limit and returns the raw result text. Exceeding the limit is a
// timeout error; there is no other cancellation mechanism.
func WaitForParseResult(jobID string) (string, error) {
	interval := time.Duration(config.AppConfig.ParserPollIntervalSec) * time.Second
	maxAttempts := config.AppConfig.ParserMaxPollAttempts

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, err := PollParseJob(jobID)
		if err != nil {
			return "", err
		}

		switch status {
		case ParseStatusSuccess:
			return FetchParseResult(jobID)
		case ParseStatusError:
			return "", fmt.Errorf("parse job %s failed at the parser service", jobID)
		}

		if attempt%15 == 0 {
			log.Printf("Parse job %s still pending after %d polls", jobID, attempt)
		}
		time.Sleep(interval)
	}

	return "", fmt.Errorf("parse job %s timed out after %d attempts", jobID, maxAttempts)
}
