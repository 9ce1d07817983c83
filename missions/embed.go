// Package missions holds the mission files shipped inside the binaries.
package missions

import "embed"

//go:embed *.yaml *.hcl
var FS embed.FS

// Practice is the file name of the default practice mission.
const Practice = "practice.yaml"
