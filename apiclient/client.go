// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mereles/electiond/models"
)

// APIError is a non-2xx response from the server. Code is the structured
// error code; older servers may send only a message.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// Client is a typed HTTP client for the electiond API.
type Client struct {
	baseURL  string
	adminKey string
	http     *http.Client
}

func New(baseURL, adminKey string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		adminKey: adminKey,
		http:     &http.Client{Timeout: 8 * time.Second},
	}
}

// request performs a call and decodes the JSON response into out (when
// out is non-nil). Non-2xx responses become *APIError.
func (c *Client) request(ctx context.Context, method, path string, body, out interface{}, headers map[string]string) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": c.adminKey}
}

// GetElectionStats fetches the election status snapshot.
func (c *Client) GetElectionStats(ctx context.Context) (models.ElectionStats, error) {
	var stats models.ElectionStats
	err := c.request(ctx, http.MethodGet, "/election/stats", nil, &stats, nil)
	return stats, err
}

// GetAllCandidates fetches the full candidate list. Admin only.
func (c *Client) GetAllCandidates(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := c.request(ctx, http.MethodGet, "/election/candidates", nil, &candidates, c.adminHeaders())
	return candidates, err
}

// GetResults fetches per-candidate tallies. Admin only; the server
// rejects the call until the election has ended.
func (c *Client) GetResults(ctx context.Context) ([]models.CandidateResult, error) {
	var results []models.CandidateResult
	err := c.request(ctx, http.MethodGet, "/election/results", nil, &results, c.adminHeaders())
	return results, err
}

// GetArchives lists archived elections, most recent first. Admin only.
func (c *Client) GetArchives(ctx context.Context) ([]models.ArchivedElection, error) {
	var archives []models.ArchivedElection
	err := c.request(ctx, http.MethodGet, "/election/archives", nil, &archives, c.adminHeaders())
	return archives, err
}

// StartElection starts the election under the given name.
func (c *Client) StartElection(ctx context.Context, name string) error {
	body := models.StartElectionRequest{ElectionName: name}
	return c.request(ctx, http.MethodPost, "/election/start", body, nil, c.adminHeaders())
}

// EndElection ends the active election and archives its results.
func (c *Client) EndElection(ctx context.Context) (models.EndElectionResponse, error) {
	var resp models.EndElectionResponse
	err := c.request(ctx, http.MethodPost, "/election/end", struct{}{}, &resp, c.adminHeaders())
	return resp, err
}

// ResetElection clears the ended election and names the next one.
func (c *Client) ResetElection(ctx context.Context, name string) (models.ResetElectionResponse, error) {
	var resp models.ResetElectionResponse
	body := models.ResetElectionRequest{ElectionName: name}
	err := c.request(ctx, http.MethodPost, "/election/reset", body, &resp, c.adminHeaders())
	return resp, err
}

// AddCandidate registers a candidate for the upcoming election. Admin only.
func (c *Client) AddCandidate(ctx context.Context, name, party string) (string, error) {
	var resp models.AddCandidateResponse
	body := models.AddCandidateRequest{Name: name, Party: party}
	err := c.request(ctx, http.MethodPost, "/election/candidates", body, &resp, c.adminHeaders())
	return resp.CandidateID, err
}

// RegisterVoter registers a voter and returns their voting token.
func (c *Client) RegisterVoter(ctx context.Context, name string) (string, error) {
	var resp models.RegisterVoterResponse
	body := models.RegisterVoterRequest{Name: name}
	err := c.request(ctx, http.MethodPost, "/voters/register", body, &resp, nil)
	return resp.VoterToken, err
}

// CastVote casts the token holder's vote for a candidate.
func (c *Client) CastVote(ctx context.Context, voterToken, candidateID string) error {
	body := models.CastVoteRequest{CandidateID: candidateID}
	headers := map[string]string{"X-Voter-Token": voterToken}
	return c.request(ctx, http.MethodPost, "/votes", body, nil, headers)
}
