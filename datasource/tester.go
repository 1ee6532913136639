package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pulseboard/pulseboard"
)

// HTTPConnectionTester performs connection tests against an external probe
// endpoint. The probe holds the actual driver logic; the registry only
// interprets its verdict.
type HTTPConnectionTester struct {
	Addr   string
	Client *http.Client
}

var _ pulseboard.ConnectionTester = (*HTTPConnectionTester)(nil)

// NewHTTPConnectionTester returns a tester pointed at the probe service
// listening on addr.
func NewHTTPConnectionTester(addr string) *HTTPConnectionTester {
	return &HTTPConnectionTester{
		Addr: addr,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type testConnectionRequest struct {
	Type        pulseboard.DataSourceType        `json:"type"`
	Config      pulseboard.DataSourceConfig      `json:"config"`
	Credentials pulseboard.DataSourceCredentials `json:"credentials"`
}

// TestConnection posts the data source's connection material to the probe and
// decodes its verdict. Any transport or decode failure is returned as an
// error; the caller maps that to the error status.
func (t *HTTPConnectionTester) TestConnection(ctx context.Context, ds *pulseboard.DataSource) (*pulseboard.ConnectionTestResult, error) {
	body, err := json.Marshal(testConnectionRequest{
		Type:        ds.Type,
		Config:      ds.Config,
		Credentials: ds.Credentials,
	})
	if err != nil {
		return nil, err
	}

	u := t.Addr + "/api/datasources/test"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("connection probe returned status %d", resp.StatusCode)
	}

	result := &pulseboard.ConnectionTestResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, err
	}
	return result, nil
}
