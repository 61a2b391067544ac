package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
}

// the operator's site renders German labels and local timestamps, so keep
// every derived time in its zone no matter where the server ends up
func Now() time.Time {
	return time.Now().In(Location)
}
