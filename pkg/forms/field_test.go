package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlledFieldDisplaysCallerValue(t *testing.T) {
	var received []string
	f := NewControlled(KindText, "alpha", func(v string) {
		received = append(received, v)
	})

	f.HandleChange("beta")

	// The change notification fired, but the displayed value stays at the
	// caller's last supplied value until the caller re-supplies it.
	require.Equal(t, []string{"beta"}, received)
	assert.Equal(t, "alpha", f.Value())

	require.NoError(t, f.SetValue("beta"))
	assert.Equal(t, "beta", f.Value())
}

func TestUncontrolledFieldOwnsItsValue(t *testing.T) {
	var received []string
	f := NewUncontrolled(KindText, "start", func(v string) {
		received = append(received, v)
	})

	f.HandleChange("typed")

	assert.Equal(t, []string{"typed"}, received)
	assert.Equal(t, "typed", f.Value())

	err := f.SetValue("external")
	require.ErrorIs(t, err, ErrUncontrolled)
	assert.Equal(t, "typed", f.Value())
}

func TestChangeNotifiesBeforeInternalUpdate(t *testing.T) {
	var seenAtNotify string
	var f *Field
	f = NewUncontrolled(KindText, "old", func(v string) {
		seenAtNotify = f.Value()
	})

	f.HandleChange("new")

	// The handler observed the pre-change value, so callers comparing
	// old and new state see both.
	assert.Equal(t, "old", seenAtNotify)
	assert.Equal(t, "new", f.Value())
}

func TestLabelActiveStates(t *testing.T) {
	f := NewUncontrolled(KindText, "", nil, WithLabel("Name"))

	assert.False(t, f.LabelActive(), "empty unfocused text field")

	f.Focus()
	assert.True(t, f.LabelActive(), "focused")

	f.Blur()
	assert.False(t, f.LabelActive())

	f.HandleChange("Ada")
	assert.True(t, f.LabelActive(), "non-empty value")

	f.HandleChange("")
	assert.False(t, f.LabelActive(), "cleared value, unfocused")
}

func TestSelectLabelAlwaysActive(t *testing.T) {
	f := NewUncontrolled(KindSelect, "", nil,
		WithLabel("Status"),
		WithOptions(Option{Label: "Choose...", Value: ""}, Opt("PENDING"), Opt("FULFILLED")),
	)

	assert.True(t, f.LabelActive(), "selects always render an active label")
}

func TestEmptyValueOptionIsDisabled(t *testing.T) {
	placeholder := Option{Label: "Choose...", Value: ""}
	assert.True(t, placeholder.Disabled())
	assert.False(t, Opt("PENDING").Disabled())
}

func TestFieldWithoutLabel(t *testing.T) {
	f := NewUncontrolled(KindText, "", nil)
	assert.False(t, f.HasLabel())
	assert.Empty(t, f.Label())
}

func TestValueCoercion(t *testing.T) {
	f := NewControlled(KindNumber, 12.5, nil)
	assert.Equal(t, "12.5", f.Value())
	assert.Equal(t, 12.5, f.TypedValue())

	require.NoError(t, f.SetValue(13))
	assert.Equal(t, "13", f.Value())
	assert.Equal(t, 13, f.TypedValue())

	require.NoError(t, f.SetValue(nil))
	assert.Empty(t, f.Value())
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	a := NewUncontrolled(KindText, "", nil)
	b := NewUncontrolled(KindText, "", nil)
	assert.NotEqual(t, a.ID(), b.ID())

	c := NewUncontrolled(KindText, "", nil, WithID("customer-name"))
	assert.Equal(t, "customer-name", c.ID())
}

func TestAttrPassthrough(t *testing.T) {
	f := NewUncontrolled(KindText, "", nil,
		WithAttr("placeholder", "Search..."),
		WithAttr("autocomplete", "off"),
	)
	assert.Equal(t, "Search...", f.Attrs()["placeholder"])
	assert.Equal(t, "off", f.Attrs()["autocomplete"])
}
