package main

import "github.com/wazuh-tools/wazuh-cli/cmd"

func main() {
	cmd.Execute()
}
