package main

import (
	"chargewatch-backend/cmd/chargewatch-cli/commands"
	"chargewatch-backend/lib/util/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
