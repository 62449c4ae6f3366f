package sdk

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Register(username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.post("/api/auth/register", credentials{Username: username, Password: password}, &resp)
	return &resp, err
}

// Login authenticates and remembers the returned token on the client.
func (c *Client) Login(username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post("/api/auth/login", credentials{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}
