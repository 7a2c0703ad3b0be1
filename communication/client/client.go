package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"sticks/communication"
	"sticks/game"

	"github.com/pkg/errors"
)

// Client plays moves chosen by a remote move service.
type Client struct {
	serverURL string
	http      *http.Client
}

// New returns a client of the move service at serverURL.
func New(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) FindMove(state game.State) (game.Move, error) {
	var resp communication.MoveResponse
	if err := c.post("/api/move", communication.MoveRequest{Pile: state.Pile}, &resp); err != nil {
		return 0, err
	}
	return game.Move(resp.Move), nil
}

// ReportOutcome tells the service how the game it played ended.
func (c *Client) ReportOutcome(won bool) error {
	return c.post("/api/outcome", communication.OutcomeRequest{Won: won}, nil)
}

// Abandon tells the service its current game ended without an outcome, so
// the tokens it drew go back untouched.
func (c *Client) Abandon() error {
	return c.post("/api/abandon", struct{}{}, nil)
}

// Policy fetches the service's current token counts.
func (c *Client) Policy() (communication.PolicyResponse, error) {
	var policy communication.PolicyResponse
	resp, err := c.http.Get(c.serverURL + "/api/policy")
	if err != nil {
		return policy, errors.Wrap(err, "failed to fetch policy")
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return policy, err
	}
	if err := json.NewDecoder(resp.Body).Decode(&policy); err != nil {
		return policy, errors.Wrap(err, "failed to decode policy")
	}
	return policy, nil
}

func (c *Client) post(path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}
	resp, err := c.http.Post(c.serverURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return errors.Wrapf(err, "failed to call %s", path)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "failed to decode %s response", path)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	var e communication.ErrorResponse
	body, _ := io.ReadAll(resp.Body)
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return errors.Errorf("move service returned %d: %s", resp.StatusCode, e.Error)
	}
	return errors.Errorf("move service returned %d: %s", resp.StatusCode, body)
}
