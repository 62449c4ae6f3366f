package sdk

import "fmt"

func (c *Client) GetCriticalAlerts() ([]Alert, error) {
	var resp struct {
		Alerts []Alert `json:"alerts"`
	}
	err := c.get("/api/alerts/critical", &resp)
	return resp.Alerts, err
}

func (c *Client) AcknowledgeAlert(id int) (*Alert, error) {
	var alert Alert
	err := c.post(fmt.Sprintf("/api/alerts/%d/ack", id), nil, &alert)
	return &alert, err
}

func (c *Client) MuteAlert(id int) (*Alert, error) {
	var alert Alert
	err := c.post(fmt.Sprintf("/api/alerts/%d/mute", id), nil, &alert)
	return &alert, err
}
