// Package api is the HTTP client for the backend GraphQL API. The
// matchmaking engine only needs the match status report; the client is kept
// deliberately small.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://gql.riptide.gg/graphql"
	requestTimeout  = 5 * time.Second
)

const reportMatchStatusMutation = `
	mutation ($report: OnlineMatchStatusReportInput!) {
		reportOnlineMatchStatus (report: $report)
	}
`

// Client talks to the backend API. Handles are cheap to copy and safe to use
// from multiple goroutines; the underlying http.Client pools connections.
type Client struct {
	logger    *zap.Logger
	http      *http.Client
	endpoint  string
	userAgent string
}

// NewClient builds a client for the given endpoint. An empty endpoint
// targets production.
func NewClient(logger *zap.Logger, endpoint, appVersion string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		logger:    logger,
		http:      &http.Client{Timeout: requestTimeout},
		endpoint:  endpoint,
		userAgent: fmt.Sprintf("RiptideNetplay (v: %s)", appVersion),
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data struct {
		ReportOnlineMatchStatus bool `json:"reportOnlineMatchStatus"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ReportMatchStatus notifies the backend about the status of a match. The
// boolean mirrors the server's acknowledgment.
func (c *Client) ReportMatchStatus(uid, matchID, playKey, status string) (bool, error) {
	body, err := json.Marshal(graphqlRequest{
		Query: reportMatchStatusMutation,
		Variables: map[string]any{
			"report": map[string]any{
				"matchId": matchID,
				"fbUid":   uid,
				"playKey": playKey,
				"status":  status,
			},
		},
	})
	if err != nil {
		return false, fmt.Errorf("could not encode status report: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("could not build status report request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("could not execute status report request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("status report request failed: %s", resp.Status)
	}

	var parsed graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("could not decode status report response: %v", err)
	}

	if len(parsed.Errors) > 0 {
		messages := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			messages = append(messages, e.Message)
		}
		return false, fmt.Errorf("status report rejected: %s", strings.Join(messages, "; "))
	}

	return parsed.Data.ReportOnlineMatchStatus, nil
}

// ReportMatchStatusAsync runs ReportMatchStatus on its own goroutine. The
// outcome is logged and otherwise discarded; callers must not depend on it.
func (c *Client) ReportMatchStatusAsync(uid, matchID, playKey, status string) {
	go func() {
		ok, err := c.ReportMatchStatus(uid, matchID, playKey, status)
		switch {
		case err != nil:
			c.logger.Error("Error executing status report request",
				zap.String("status", status), zap.Error(err))
		case !ok:
			c.logger.Error("Failed status report request", zap.String("status", status))
		default:
			c.logger.Info("Executed status report request", zap.String("status", status))
		}
	}()
}
