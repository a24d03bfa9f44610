package exchange

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/calperm/calperm/internal/permission"
)

// DefaultCalendarType is the FolderType of a mailbox's primary calendar.
const DefaultCalendarType = "Calendar"

// Session is an authenticated connection for one administrator.
type Session struct {
	Admin        string
	Tenant       string
	Organization string
	ConnectedAt  time.Time
}

// Mailbox is the subset of Get-Mailbox output calperm uses.
type Mailbox struct {
	Identity             string `json:"Identity"`
	DisplayName          string `json:"DisplayName"`
	PrimarySMTPAddress   string `json:"PrimarySmtpAddress"`
	Alias                string `json:"Alias"`
	RecipientTypeDetails string `json:"RecipientTypeDetails"`
}

// Address returns the primary SMTP address, or the identity when absent.
func (m Mailbox) Address() string {
	if m.PrimarySMTPAddress != "" {
		return m.PrimarySMTPAddress
	}
	return m.Identity
}

// Calendar is one calendar folder of a mailbox.
type Calendar struct {
	Name       string
	FolderPath string // "/Calendar" or "/Calendar/Team"
	FolderType string
	ItemCount  int
	SizeBytes  int64
	Identity   string
}

// IsDefault reports whether c is the mailbox's primary calendar.
func (c Calendar) IsDefault() bool {
	return strings.EqualFold(c.FolderType, DefaultCalendarType)
}

// PermissionPath is the folder identity used by the *-MailboxFolderPermission
// cmdlets: "alice@contoso.com:\Calendar\Team".
func (c Calendar) PermissionPath(mailbox string) string {
	path := strings.Trim(c.FolderPath, "/")
	if path == "" {
		path = c.Name
	}
	return mailbox + ":\\" + strings.ReplaceAll(path, "/", "\\")
}

// Permission is one entry of a folder's permission list.
type Permission struct {
	User            string
	AccessRights    permission.AccessRight
	RawAccessRights string // as reported, for rights outside the known set
	SharingFlags    permission.SharingFlags
}

// IsBuiltIn reports whether the entry is Default or Anonymous.
func (p Permission) IsBuiltIn() bool {
	return permission.IsBuiltIn(p.User)
}

// PermissionChange is the input of Grant and Modify.
type PermissionChange struct {
	CalendarPath string
	User         string
	AccessRight  permission.AccessRight
	Notify       bool
	Sharing      permission.SharingFlags
}

// folderStatistics is one Get-MailboxFolderStatistics record.
type folderStatistics struct {
	Name          string `json:"Name"`
	FolderPath    string `json:"FolderPath"`
	FolderType    string `json:"FolderType"`
	ItemsInFolder int    `json:"ItemsInFolder"`
	FolderSize    string `json:"FolderSize"`
	Identity      string `json:"Identity"`
}

func (f folderStatistics) calendar() Calendar {
	return Calendar{
		Name:       f.Name,
		FolderPath: f.FolderPath,
		FolderType: f.FolderType,
		ItemCount:  f.ItemsInFolder,
		SizeBytes:  ParseFolderSize(f.FolderSize),
		Identity:   f.Identity,
	}
}

// folderPermission is one Get-MailboxFolderPermission record. User is either
// a string or an object with a DisplayName.
type folderPermission struct {
	User                   json.RawMessage `json:"User"`
	AccessRights           []string        `json:"AccessRights"`
	SharingPermissionFlags string          `json:"SharingPermissionFlags"`
}

func (f folderPermission) permission() Permission {
	raw := strings.Join(f.AccessRights, ", ")
	return Permission{
		User:            decodeUser(f.User),
		AccessRights:    permission.ParseAccessRight(raw),
		RawAccessRights: raw,
		SharingFlags:    permission.ParseSharingFlags(f.SharingPermissionFlags),
	}
}

func decodeUser(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		DisplayName string `json:"DisplayName"`
		Identity    string `json:"Identity"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.DisplayName != "" {
			return obj.DisplayName
		}
		return obj.Identity
	}
	return ""
}

var folderSizeBytes = regexp.MustCompile(`\(([\d,.\s]+) bytes\)`)

// ParseFolderSize extracts the byte count from "1.2 MB (1,234,567 bytes)".
// Unparseable sizes are 0.
func ParseFolderSize(s string) int64 {
	m := folderSizeBytes.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, m[1])
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatSize renders a byte count for menus: "512 B", "1.5 KB", "2.0 MB".
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit && exp < 3; v /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(n)/float64(div), 'f', 1, 64) + " " + string("KMGT"[exp]) + "B"
}
