package wifi

// Result reports allow-list membership. Evaluated is false when no allow-list
// is configured, in which case the gate always passes.
type Result struct {
	Pass      bool
	Evaluated bool
}

// Evaluate passes when the allow-list is empty or the connected SSID is a
// member. BSSIDs are recorded on the attendance snapshot but never gate
// admission - access points get swapped too often for that to be reliable.
func Evaluate(ssid string, allowList []string) Result {
	if len(allowList) == 0 {
		return Result{Pass: true}
	}
	for _, allowed := range allowList {
		if allowed == ssid {
			return Result{Pass: true, Evaluated: true}
		}
	}
	return Result{Pass: false, Evaluated: true}
}
