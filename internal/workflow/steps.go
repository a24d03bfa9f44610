package workflow

// nav is where a step sends the workflow next.
type nav int

const (
	navNext   nav = iota
	navBack       // previous step; before the first step this leaves the workflow
	navSkip       // step had nothing to ask, keep moving in the current direction
	navCancel     // abandon the workflow and return to the main menu
)

type step func() (nav, error)

// runSteps drives steps as a loop. Back from the first step and Cancel
// anywhere return to the caller. Only runner errors are returned.
func runSteps(steps ...step) error {
	i, forward := 0, true
	for i >= 0 && i < len(steps) {
		n, err := steps[i]()
		if err != nil {
			return err
		}
		switch n {
		case navNext:
			i, forward = i+1, true
		case navBack:
			i, forward = i-1, false
		case navSkip:
			if forward {
				i++
			} else {
				i--
			}
		case navCancel:
			return nil
		}
	}
	return nil
}
