// Package sample bundles a demo payload: a cloud DescribeVpcs response.
package sample

import _ "embed"

//go:embed payloads/describe_vpcs.json
var describeVpcs string

// Payload returns the bundled demo document as JSON text.
func Payload() string {
	return describeVpcs
}
