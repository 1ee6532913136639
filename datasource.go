package pulseboard

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/kit/platform"
)

// DataSourceType names a supported external connection type.
type DataSourceType string

const (
	DataSourcePostgreSQL      DataSourceType = "postgresql"
	DataSourceMySQL           DataSourceType = "mysql"
	DataSourceMongoDB         DataSourceType = "mongodb"
	DataSourceSnowflake       DataSourceType = "snowflake"
	DataSourceBigQuery        DataSourceType = "bigquery"
	DataSourceRESTAPI         DataSourceType = "rest-api"
	DataSourceGraphQL         DataSourceType = "graphql"
	DataSourceAWSCloudWatch   DataSourceType = "aws-cloudwatch"
	DataSourceAzureMonitor    DataSourceType = "azure-monitor"
	DataSourceGCPMonitoring   DataSourceType = "gcp-monitoring"
	DataSourceSalesforce      DataSourceType = "salesforce"
	DataSourceHubSpot         DataSourceType = "hubspot"
	DataSourceGoogleAnalytics DataSourceType = "google-analytics"
)

// DataSourceKind groups connection types by the shape of their configuration.
type DataSourceKind string

const (
	KindDatabase DataSourceKind = "database"
	KindAPI      DataSourceKind = "api"
	KindCloud    DataSourceKind = "cloud"
	KindSaaS     DataSourceKind = "saas"
)

// Kind returns the configuration shape of t, or an empty kind for unknown types.
func (t DataSourceType) Kind() DataSourceKind {
	switch t {
	case DataSourcePostgreSQL, DataSourceMySQL, DataSourceMongoDB,
		DataSourceSnowflake, DataSourceBigQuery:
		return KindDatabase
	case DataSourceRESTAPI, DataSourceGraphQL:
		return KindAPI
	case DataSourceAWSCloudWatch, DataSourceAzureMonitor, DataSourceGCPMonitoring:
		return KindCloud
	case DataSourceSalesforce, DataSourceHubSpot, DataSourceGoogleAnalytics:
		return KindSaaS
	}
	return ""
}

// Valid reports whether t is a known data source type.
func (t DataSourceType) Valid() bool {
	return t.Kind() != ""
}

// ConnectionStatus is the 3-state connection health machine. Transitions are
// driven only by connection test outcomes; direct writes are treated as
// manual overrides.
type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusConnected    ConnectionStatus = "connected"
	StatusError        ConnectionStatus = "error"
)

// Valid reports whether s is a known connection status.
func (s ConnectionStatus) Valid() bool {
	switch s {
	case StatusDisconnected, StatusConnected, StatusError:
		return true
	}
	return false
}

// DataSourceConfig is the tagged configuration union. Exactly the record
// matching the data source type's kind must be populated; this is validated
// at construction time rather than probed at use time.
type DataSourceConfig struct {
	Database *DatabaseConfig `json:"database,omitempty"`
	API      *APIConfig      `json:"api,omitempty"`
	Cloud    *CloudConfig    `json:"cloud,omitempty"`
	SaaS     *SaaSConfig     `json:"saas,omitempty"`
}

// DatabaseConfig configures database-kind connections.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	SSLMode  string `json:"sslMode,omitempty"`
}

// APIConfig configures rest-api and graphql connections.
type APIConfig struct {
	BaseURL string            `json:"baseUrl"`
	Headers map[string]string `json:"headers,omitempty"`
	Timeout int               `json:"timeout,omitempty"`
}

// CloudConfig configures cloud monitoring connections.
type CloudConfig struct {
	Region    string `json:"region"`
	ProjectID string `json:"projectId,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// SaaSConfig configures SaaS product connections.
type SaaSConfig struct {
	AccountID  string `json:"accountId"`
	InstanceID string `json:"instanceId,omitempty"`
}

// DataSourceCredentials holds connection secrets. Credentials are write-only
// from the UI's perspective; the HTTP layer redacts them on the way out.
type DataSourceCredentials struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Empty reports whether any secret material is present.
func (c DataSourceCredentials) Empty() bool {
	return c == DataSourceCredentials{}
}

// DataSourceMetadata records bookkeeping about a data source.
type DataSourceMetadata struct {
	CreatedAt       time.Time  `json:"createdAt"`
	LastTestedAt    *time.Time `json:"lastTestedAt,omitempty"`
	LastTestMessage string     `json:"lastTestMessage,omitempty"`
	// ManualOverride is set when the status was written directly through
	// UpdateDataSource instead of being driven by a connection test.
	ManualOverride bool `json:"manualOverride,omitempty"`
}

// DataSource is a configured logical connection that KPI configs may resolve
// against.
type DataSource struct {
	ID             platform.ID           `json:"id"`
	Name           string                `json:"name"`
	Type           DataSourceType        `json:"type"`
	Status         ConnectionStatus      `json:"status"`
	Config         DataSourceConfig      `json:"config"`
	Credentials    DataSourceCredentials `json:"credentials"`
	Metadata       DataSourceMetadata    `json:"metadata"`
	TenantID       platform.ID           `json:"tenantId"`
	OrganizationID platform.ID           `json:"organizationId"`
}

// DataSourceUpdate is a patch applied to a data source. A non-nil Status is
// honored but flagged as a manual override.
type DataSourceUpdate struct {
	Name        *string                `json:"name,omitempty"`
	Config      *DataSourceConfig      `json:"config,omitempty"`
	Credentials *DataSourceCredentials `json:"credentials,omitempty"`
	Status      *ConnectionStatus      `json:"status,omitempty"`
}

// DataSourceFilter selects data sources in FindDataSources.
type DataSourceFilter struct {
	Type           *DataSourceType
	Status         *ConnectionStatus
	TenantID       *platform.ID
	OrganizationID *platform.ID
}

// DataSourceStatistics summarizes the registry contents.
type DataSourceStatistics struct {
	Total     int                    `json:"total"`
	Connected int                    `json:"connected"`
	ByType    map[DataSourceType]int `json:"byType"`
}

// ConnectionTestResult is the outcome of a connection test RPC.
type ConnectionTestResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ResponseTime int    `json:"responseTime,omitempty"`
}

// ConnectionTester performs the outward connection-test RPC. Implementations
// must turn transport failures into an error return; the registry maps both
// failed tests and transport errors to the error status.
type ConnectionTester interface {
	TestConnection(ctx context.Context, ds *DataSource) (*ConnectionTestResult, error)
}

// DataSourceService is the data source registry.
type DataSourceService interface {
	// FindDataSourceByID returns a single data source by ID.
	FindDataSourceByID(ctx context.Context, id platform.ID) (*DataSource, error)

	// FindDataSources returns data sources matching filter.
	FindDataSources(ctx context.Context, filter DataSourceFilter) ([]*DataSource, int, error)

	// CreateDataSource validates the typed configuration and creates the
	// record with status disconnected.
	CreateDataSource(ctx context.Context, ds *DataSource) error

	// UpdateDataSource updates a single data source with a changeset.
	UpdateDataSource(ctx context.Context, id platform.ID, upd DataSourceUpdate) (*DataSource, error)

	// DeleteDataSource removes the record unconditionally. KPI configs
	// referencing it are left dangling; they degrade to a zero value on read.
	DeleteDataSource(ctx context.Context, id platform.ID) error

	// TestConnection runs the connection test and applies the resulting
	// status transition. This is the only state-machine-compliant way to
	// change connection status.
	TestConnection(ctx context.Context, id platform.ID) (*ConnectionTestResult, error)

	// Statistics summarizes the registry.
	Statistics(ctx context.Context) (*DataSourceStatistics, error)
}
