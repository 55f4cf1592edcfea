package deploy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the deploy configuration, read once per invocation.
// Only the destination key matters to the deployer; the notify block is
// optional and enables the AMQP notification after a successful run.
type Config struct {
	Destination string       `yaml:"destination"`
	Notify      NotifyConfig `yaml:"notify"`
}

type NotifyConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

func LoadConfig(configFile string) (cfg *Config, err error) {
	var data []byte
	if data, err = os.ReadFile(configFile); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %s does not exist (copy deploy.yaml.example and set destination, or use --local)", ErrConfigMissing, configFile)
		}
		return
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		err = fmt.Errorf("failed to parse %s: %w", configFile, err)
		return
	}

	cfg = &config
	return
}
