// Package hostinfo reports where a run is happening. Default EC2 private
// DNS names in the default VPC range look like ip-172-31-x-y, so a hostname
// carrying that prefix is taken as evidence the process runs on EC2.
package hostinfo

import (
	"os"
	"strings"
)

// ec2HostnamePrefix is the start of a default-VPC EC2 private DNS name.
const ec2HostnamePrefix = "ip-172-31-"

// Info describes the machine a simulation runs on.
type Info struct {
	Hostname     string
	EC2Patterned bool
}

// Detect resolves the local hostname and classifies it. A hostname lookup
// failure degrades to "unknown" rather than failing the run.
func Detect() Info {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return infoFor(hostname)
}

func infoFor(hostname string) Info {
	return Info{
		Hostname:     hostname,
		EC2Patterned: strings.HasPrefix(hostname, ec2HostnamePrefix),
	}
}
