package urls

// Documentation URLs for guides and troubleshooting

// Project is the project home page.
const Project = "https://github.com/calperm/calperm"

// AccessTokens explains how to obtain an admin API token and store it
// with 'calperm token set'.
const AccessTokens = "https://github.com/calperm/calperm#access-tokens"

// TroubleshootingGuide covers connection, throttling and permission errors.
const TroubleshootingGuide = "https://github.com/calperm/calperm#troubleshooting"

// FolderPermissionRoles is Microsoft's reference for the access rights
// offered in the access level menu.
const FolderPermissionRoles = "https://learn.microsoft.com/powershell/module/exchange/add-mailboxfolderpermission"
