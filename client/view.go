package client

// Region names a status text area of the view.
type Region int

const (
	RegionSave Region = iota
	RegionUpdate
)

func (r Region) String() string {
	switch r {
	case RegionSave:
		return "save"
	case RegionUpdate:
		return "update"
	}
	return "unknown"
}

type State int

const (
	StateSetup State = iota
	StateDashboard
)

func (s State) String() string {
	if s == StateDashboard {
		return "dashboard"
	}
	return "setup"
}

// View is whatever renders the controller: a browser page, a terminal, a test recorder.
type View interface {
	SetStatus(r Region, text string)
	// ShowDashboard hides the setup step and reveals the dashboard.
	ShowDashboard()
	ShowTokenID(id int64)
	SetCurrentBio(bio string)
	// Confirm blocks until the user answers.
	Confirm(prompt string) bool
	Alert(text string)
	// Reload discards everything shown and returns to the setup step.
	Reload()
}
