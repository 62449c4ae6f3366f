package sdk

import "fmt"

func (c *Client) GetInitialData() (*Snapshot, error) {
	var snap Snapshot
	err := c.get("/api/dashboard/initial", &snap)
	return &snap, err
}

func (c *Client) GetHistory(sensorType string, limit int) ([]Reading, error) {
	path := fmt.Sprintf("/api/dashboard/history?limit=%d", limit)
	if sensorType != "" {
		path += "&type=" + sensorType
	}
	var readings []Reading
	err := c.get(path, &readings)
	return readings, err
}

func (c *Client) SetControls(heater, greywater *bool) (*Controls, error) {
	body := map[string]*bool{}
	if heater != nil {
		body["heater"] = heater
	}
	if greywater != nil {
		body["greywater"] = greywater
	}
	var controls Controls
	err := c.put("/api/dashboard/controls", body, &controls)
	return &controls, err
}

func (c *Client) GetSystemStats() (*HostStats, error) {
	var stats HostStats
	err := c.get("/api/system/stats", &stats)
	return &stats, err
}
