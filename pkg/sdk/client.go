package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(method, path string, body interface{}, target interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	if target != nil {
		return json.NewDecoder(resp.Body).Decode(target)
	}
	return nil
}

func (c *Client) get(path string, target interface{}) error {
	return c.do(http.MethodGet, path, nil, target)
}

func (c *Client) post(path string, body interface{}, target interface{}) error {
	return c.do(http.MethodPost, path, body, target)
}

func (c *Client) put(path string, body interface{}, target interface{}) error {
	return c.do(http.MethodPut, path, body, target)
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("error: %s", payload.Message)
	}

	msg := strings.TrimSpace(string(body))
	if msg != "" {
		return fmt.Errorf("error: %s", msg)
	}
	return fmt.Errorf("API error (%d)", resp.StatusCode)
}

// GetWebSocketURL converts the base URL into the websocket endpoint,
// carrying the bearer token as a query parameter.
func (c *Client) GetWebSocketURL(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = path
	if c.token != "" {
		q := u.Query()
		q.Set("token", c.token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
