// Package permission models calendar folder access rights and the delegate
// flags that may accompany the Editor right.
package permission

import "strings"

// AccessRight is one of the fixed calendar permission levels.
type AccessRight int

const (
	Unknown AccessRight = iota
	Owner
	PublishingEditor
	Editor
	PublishingAuthor
	Author
	NonEditingAuthor
	Reviewer
	Contributor
	AvailabilityOnly
	LimitedDetails
)

type rightInfo struct {
	name        string
	description string
	color       string
}

var rightTable = [...]rightInfo{
	Unknown:          {"Unknown", "Permission level not recognized", "Gray"},
	Owner:            {"Owner", "Full control: create, read, modify and delete all items, manage permissions", "Red"},
	PublishingEditor: {"PublishingEditor", "Create, read, modify and delete all items, create subfolders", "Magenta"},
	Editor:           {"Editor", "Create, read, modify and delete all items", "Yellow"},
	PublishingAuthor: {"PublishingAuthor", "Create and read items, modify and delete own items, create subfolders", "Cyan"},
	Author:           {"Author", "Create and read items, modify and delete own items", "Blue"},
	NonEditingAuthor: {"NonEditingAuthor", "Create and read items, delete own items", "DarkCyan"},
	Reviewer:         {"Reviewer", "Read all items", "Green"},
	Contributor:      {"Contributor", "Create items only", "DarkYellow"},
	AvailabilityOnly: {"AvailabilityOnly", "View free/busy time only", "DarkGray"},
	LimitedDetails:   {"LimitedDetails", "View free/busy time with subject and location", "DarkGreen"},
}

// All lists the assignable rights in display order, most privileged first.
func All() []AccessRight {
	return []AccessRight{
		Owner, PublishingEditor, Editor, PublishingAuthor, Author,
		NonEditingAuthor, Reviewer, Contributor, AvailabilityOnly, LimitedDetails,
	}
}

func (r AccessRight) info() rightInfo {
	if r < 0 || int(r) >= len(rightTable) {
		return rightTable[Unknown]
	}
	return rightTable[r]
}

// String returns the name the admin API uses for r.
func (r AccessRight) String() string { return r.info().name }

// Description is a one-line summary of what r allows.
func (r AccessRight) Description() string { return r.info().description }

// Color is the palette name r is displayed in.
func (r AccessRight) Color() string { return r.info().color }

// Valid reports whether r is an assignable right.
func (r AccessRight) Valid() bool { return r > Unknown && int(r) < len(rightTable) }

// ParseAccessRight maps an API value to an AccessRight, ignoring case. The
// API reports rights as a list; the first recognized entry wins. "None" and
// unrecognized values yield Unknown.
func ParseAccessRight(s string) AccessRight {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		for _, r := range All() {
			if strings.EqualFold(part, r.String()) {
				return r
			}
		}
	}
	return Unknown
}
