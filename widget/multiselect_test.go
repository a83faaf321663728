package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleValue(t *testing.T) {
	in := []string{"GST"}
	out := ToggleValue(in, "MSME")
	assert.Equal(t, []string{"GST", "MSME"}, out)
	assert.Equal(t, []string{"GST"}, in)

	assert.Equal(t, []string{"MSME"}, ToggleValue(out, "GST"))
}

func TestMultiSelect(t *testing.T) {
	bus := NewClickBus()
	var last []string
	m := NewMultiSelect(Strings("Dairy", "Bakery"), "Pick categories", func(v []string) { last = v })
	m.Mount(bus)
	defer m.Unmount()

	assert.Equal(t, "Pick categories", m.Label())
	m.Toggle()
	m.Check("Dairy")
	m.Check("Bakery")
	assert.True(t, m.IsOpen(), "checking an option keeps the list open")
	assert.Equal(t, "Dairy, Bakery", m.Label())

	m.Check("Dairy")
	assert.Equal(t, []string{"Bakery"}, last)

	bus.Click(nil)
	assert.False(t, m.IsOpen())
	assert.Equal(t, []string{"Bakery"}, m.Selected())
}

func TestResolveOption(t *testing.T) {
	o, err := ResolveOption("GST")
	require.NoError(t, err)
	assert.Equal(t, Option{Value: "GST", Label: "GST"}, o)

	o, err = ResolveOption(map[string]any{"value": "pvt", "label": "Private Limited"})
	require.NoError(t, err)
	assert.Equal(t, Option{Value: "pvt", Label: "Private Limited"}, o)

	o, err = ResolveOption(Option{Value: "llp"})
	require.NoError(t, err)
	assert.Equal(t, "llp", o.Label)

	_, err = ResolveOption(map[string]any{"label": "no value"})
	assert.Error(t, err)
	_, err = ResolveOption(42)
	assert.Error(t, err)

	opts, err := ResolveOptions([]any{"A", map[string]any{"value": "b", "label": "B"}})
	require.NoError(t, err)
	assert.Equal(t, "B", LabelFor(opts, "b"))
}

func TestFileUploadFieldKeepsOnlyName(t *testing.T) {
	var got []byte
	f := FileUploadField[[]byte]{
		Field:        Field{Name: "panCard", Label: "PAN Card", Required: true},
		OnFileSelect: func(b []byte) { got = b },
	}
	f.Pick("pan.pdf", []byte("%PDF"))
	assert.Equal(t, "pan.pdf", f.FileName())
	assert.Equal(t, []byte("%PDF"), got)
	assert.Equal(t, "PAN Card *", f.Caption())
}
