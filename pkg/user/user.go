package user

import "time"

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

// Settings holds per-account preferences. WeekFirstDay drives the weekly
// budget-limit window and defaults to Monday for new accounts.
type Settings struct {
	Timezone     string
	WeekFirstDay time.Weekday
	Currency     string
}
