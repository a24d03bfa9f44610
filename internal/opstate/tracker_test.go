package opstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_SetMergesFields(t *testing.T) {
	tr := NewTracker("App")

	tr.Set(Action("X"))
	tr.Set(Target("Y"))

	assert.Equal(t, State{Action: "X", TargetMailbox: "Y"}, tr.State())

	tr.Set(Action("Z"), Step("pick"))
	assert.Equal(t, State{Action: "Z", TargetMailbox: "Y", Step: "pick"}, tr.State())
}

func TestTracker_ResetClearsEverything(t *testing.T) {
	tr := NewTracker("App")
	tr.Set(Action("Add"), Target("alice@contoso.com"), User("bob@contoso.com"), Step("Confirm"))
	tr.Set(Step("Done"))

	tr.Reset()

	assert.Equal(t, State{}, tr.State())
	assert.Equal(t, "App", tr.Title())
	assert.Empty(t, tr.StatusBar())
}

func TestTracker_Title(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		want   string
	}{
		{"empty", nil, "App"},
		{"action only", []Field{Action("View")}, "App | View"},
		{"all", []Field{Action("Add"), Target("a@b.com"), User("c@d.com"), Step("Level")},
			"App | Add | Target: a@b.com | User: c@d.com | Level"},
		{"gaps omitted", []Field{Action("Remove"), Step("Confirm")}, "App | Remove | Confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker("App")
			tr.Set(tt.fields...)
			assert.Equal(t, tt.want, tr.Title())
		})
	}
}

func TestTracker_DefaultAppName(t *testing.T) {
	tr := NewTracker("")
	assert.Equal(t, DefaultAppName, tr.Title())
}

func TestTracker_OnChangeSeesEveryMutation(t *testing.T) {
	tr := NewTracker("App")
	var titles []string
	tr.OnChange = func(title string) { titles = append(titles, title) }

	tr.Set(Action("Add"))
	tr.Set(Target("a@b.com"))
	tr.Reset()

	assert.Equal(t, []string{"App | Add", "App | Add | Target: a@b.com", "App"}, titles)
}

func TestTracker_StatusBar(t *testing.T) {
	tr := NewTracker("App")
	tr.Set(Action("Modify"), User("bob@contoso.com"))
	assert.Equal(t, []StatusItem{
		{Label: "Action", Value: "Modify"},
		{Label: "User", Value: "bob@contoso.com"},
	}, tr.StatusBar())
}
