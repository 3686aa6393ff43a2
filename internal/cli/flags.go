package cli

import "tmi/internal/config"

// Flags holds command-line flags
type Flags struct {
	OperatorID int64
	RunName    string
	DUTID      int64
	Limit      int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		OperatorID: f.OperatorID,
		RunName:    f.RunName,
		DUTID:      f.DUTID,
		Limit:      f.Limit,
	}
}
