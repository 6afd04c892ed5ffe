package offload

import "fmt"

// Profile selects the offload strategy. The numbering follows the
// conventional memory-management profiles of the original model stack;
// each number maps to a named strategy here.
type Profile int

const (
	// ProfilePinned (0): every component is migrated to the accelerator at
	// startup and never evicted. The whole set must fit the budget.
	ProfilePinned Profile = 0
	// ProfileAggressive (1): a component is evicted as soon as its last
	// reference is released. Minimizes resident memory, maximizes traffic.
	ProfileAggressive Profile = 1
	// ProfileBalanced (3): a released component stays resident for a retain
	// window and is evicted when the window expires idle, or earlier under
	// memory pressure.
	ProfileBalanced Profile = 3
)

// ParseProfile validates a numeric profile from config.
func ParseProfile(n int) (Profile, error) {
	switch Profile(n) {
	case ProfilePinned, ProfileAggressive, ProfileBalanced:
		return Profile(n), nil
	}
	return 0, fmt.Errorf("unsupported offload profile %d (expected 0, 1 or 3)", n)
}

func (p Profile) String() string {
	switch p {
	case ProfilePinned:
		return "pinned"
	case ProfileAggressive:
		return "aggressive"
	case ProfileBalanced:
		return "balanced"
	default:
		return fmt.Sprintf("profile(%d)", int(p))
	}
}
