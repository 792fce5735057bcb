package internal

const (
	DriverESAPI   = "esapi"   // DriverESAPI uses the official low level client of the cluster flavour
	DriverOlivere = "olivere" // DriverOlivere uses github.com/olivere/elastic, elasticsearch only
)

// Config is the configuration for elastickit
type Config struct {
	LogLevel      string         `yaml:"log_level"`     // LogLevel is the log level
	ElasticSearch *ClusterConfig `yaml:"elasticsearch"` // ElasticSearch configuration for the elasticsearch client
	OpenSearch    *ClusterConfig `yaml:"opensearch"`    // OpenSearch configuration for the opensearch client
}

// ClusterConfig is the configuration for a cluster client
type ClusterConfig struct {
	Addresses string `yaml:"addresses"` // Addresses comma separated list of node URLs
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Driver    string `yaml:"driver"` // Driver selects the client library, defaults to esapi
}
