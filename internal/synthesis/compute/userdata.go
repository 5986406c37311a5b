package compute

import "strings"

// Fixed user data steps wrapped around the caller's commands.
const (
	UserDataShebang     = "#!/bin/bash"
	UserDataUpdate      = "dnf update -y"
	UserDataAgent       = "dnf install -y amazon-cloudwatch-agent"
	UserDataCompleteMsg = `echo "UserData complete"`
)

// BuildUserData renders the boot script: OS update, the given commands in
// order, CloudWatch agent install, completion marker.
func BuildUserData(commands []string) string {
	lines := make([]string, 0, len(commands)+4)
	lines = append(lines, UserDataShebang, UserDataUpdate)
	lines = append(lines, commands...)
	lines = append(lines, UserDataAgent, UserDataCompleteMsg)
	return strings.Join(lines, "\n")
}
