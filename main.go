// main.go
package main

import "github.com/yataco/dashboard/backend/cmd"

func main() {
	cmd.Execute()
}
