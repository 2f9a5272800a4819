package config

import (
	"fmt"
	"os"
)

// Template returns a commented packctl config carrying the default values.
func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o600)
}

const defaultTemplate = `# packctl configuration
node_id = "packctl"
listen_addr = ":7400"
dial_addr = "127.0.0.1:7400"
# empty disables the /metrics endpoint
metrics_addr = ":9400"
multiplex = false

# decode limits, 0 is unlimited
max_string_len = 65536
max_sequence_len = 65536
# exchange payload limit in bytes, 0 selects the 16 MiB default
max_payload = 16777216

read_timeout = "15s"
write_timeout = "15s"
connect_timeout = "5s"

[backoff]
initial_delay = "250ms"
multiplier = 2.0
max_delay = "5s"
jitter = true
# 0 retries until interrupted
max_attempts = 8

[mqtt]
broker = ""
client_id = ""
topic_prefix = "wirepack"
qos = 1
`
