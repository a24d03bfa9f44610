// Package exchange provides an HTTP client for Exchange Online calendar
// folder permissions.
//
// Every operation is a cmdlet invoked through the admin REST endpoint
// (POST {endpoint}/adminapi/beta/{tenant}/InvokeCommand). Responses are
// decoded into Mailbox, Calendar and Permission values and failures into
// typed *APIError values that the console turns into result screens.
//
// # Usage Example
//
//	ring, _ := exchange.OpenKeyring(configDir)
//	client := exchange.NewClient("", "", exchange.KeyringTokens{Ring: ring})
//
//	session, err := client.Connect(ctx, "admin@contoso.com")
//	if err != nil {
//	    return err
//	}
//	defer client.Disconnect(session)
//
//	calendars, err := client.ListCalendars(ctx, "alice@contoso.com")
//	...
//	err = client.GrantPermission(ctx, exchange.PermissionChange{
//	    CalendarPath: calendars[0].PermissionPath("alice@contoso.com"),
//	    User:         "bob@contoso.com",
//	    AccessRight:  permission.Reviewer,
//	    Notify:       true,
//	})
//
// # Error Handling
//
// Read-only cmdlets are retried on throttling, server and network errors.
// Add, Set and Remove are sent once. Use IsNotFound, IsAlreadyExists and
// IsAuthError to branch, and TroubleshootingHint for user-facing advice.
package exchange
