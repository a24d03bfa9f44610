package permission

import "strings"

// SharingFlags are the delegate attributes of an Editor permission.
type SharingFlags int

const (
	SharingNone SharingFlags = iota
	SharingDelegate
	SharingDelegatePrivate
)

// String returns the SharingPermissionFlags value the API expects.
func (f SharingFlags) String() string {
	switch f {
	case SharingDelegate:
		return "Delegate"
	case SharingDelegatePrivate:
		return "Delegate,CanViewPrivateItems"
	default:
		return "None"
	}
}

// Label is the menu text for f.
func (f SharingFlags) Label() string {
	switch f {
	case SharingDelegate:
		return "Delegate"
	case SharingDelegatePrivate:
		return "Delegate with private items"
	default:
		return "Standard editor"
	}
}

// Hint describes what choosing f means for the user.
func (f SharingFlags) Hint() string {
	switch f {
	case SharingDelegate:
		return "Receives meeting requests and responses for the mailbox"
	case SharingDelegatePrivate:
		return "Delegate who can also see items marked private"
	default:
		return "Edit the calendar without delegate rights"
	}
}

// DelegateChoices lists the flags offered for the Editor right, in menu order.
func DelegateChoices() []SharingFlags {
	return []SharingFlags{SharingNone, SharingDelegate, SharingDelegatePrivate}
}

// ParseSharingFlags maps an API value such as "Delegate, CanViewPrivateItems"
// to SharingFlags. CanViewPrivateItems without Delegate is not a valid
// combination and is reported as SharingNone.
func ParseSharingFlags(s string) SharingFlags {
	var delegate, private bool
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "delegate":
			delegate = true
		case "canviewprivateitems":
			private = true
		}
	}
	switch {
	case delegate && private:
		return SharingDelegatePrivate
	case delegate:
		return SharingDelegate
	default:
		return SharingNone
	}
}

// Allowed reports whether flags may be combined with right.
func Allowed(right AccessRight, flags SharingFlags) bool {
	return flags == SharingNone || right == Editor
}

// Default and Anonymous are the built-in principals present on every calendar.
const (
	DefaultUser   = "Default"
	AnonymousUser = "Anonymous"
)

// IsBuiltIn reports whether user is Default or Anonymous. Their levels can be
// changed but they cannot be removed.
func IsBuiltIn(user string) bool {
	return strings.EqualFold(user, DefaultUser) || strings.EqualFold(user, AnonymousUser)
}
